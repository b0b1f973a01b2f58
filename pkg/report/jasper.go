package report

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fenixclinic/clinic-api/pkg/errors"
)

// DBParams are passed to the reporting engine, which runs its own queries
// against the clinic database.
type DBParams struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// Config holds report generator configuration
type Config struct {
	StarterPath  string
	TemplateDir  string
	TmpDir       string
	CleanupDelay time.Duration
	DB           DBParams
}

// File is a generated report on disk.
type File struct {
	Path string
	Name string
}

// Generator invokes the external JasperReports engine (jasperstarter CLI)
// and owns the temporary-file lifecycle of its output.
type Generator struct {
	cfg Config
}

func NewGenerator(cfg Config) *Generator {
	if cfg.CleanupDelay <= 0 {
		cfg.CleanupDelay = 30 * time.Minute
	}
	return &Generator{cfg: cfg}
}

// Generate runs the named template with the given engine parameters and
// returns the produced PDF file. The call blocks until the engine exits.
func (g *Generator) Generate(ctx context.Context, template string, params map[string]string) (*File, error) {
	templatePath := filepath.Join(g.cfg.TemplateDir, template+".jrxml")
	if _, err := os.Stat(templatePath); err != nil {
		return nil, errors.NotFound("report template", err)
	}

	if err := os.MkdirAll(g.cfg.TmpDir, 0o755); err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to create tmp dir: %w", err))
	}

	name := fmt.Sprintf("%s_%s", template, time.Now().Format("20060102_150405.000000"))
	outputBase := filepath.Join(g.cfg.TmpDir, name)

	args := []string{
		"process", templatePath,
		"-f", "pdf",
		"-o", outputBase,
		"-t", "postgres",
		"-H", g.cfg.DB.Host,
		"--db-port", fmt.Sprintf("%d", g.cfg.DB.Port),
		"-u", g.cfg.DB.User,
		"-p", g.cfg.DB.Password,
		"-n", g.cfg.DB.Name,
	}
	for k, v := range params {
		args = append(args, "-P", fmt.Sprintf("%s=%s", k, v))
	}

	cmd := exec.CommandContext(ctx, g.cfg.StarterPath, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, errors.Internal(fmt.Errorf("report generation failed: %w: %s", err, out))
	}

	pdfPath := outputBase + ".pdf"
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, errors.Internal(fmt.Errorf("report engine produced no output: %w", err))
	}

	return &File{Path: pdfPath, Name: name + ".pdf"}, nil
}

// ScheduleCleanup removes the file after the configured delay. Best effort:
// the timer outlives the request and a failed removal is only logged.
func (g *Generator) ScheduleCleanup(f *File) {
	path := f.Path
	time.AfterFunc(g.cfg.CleanupDelay, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("failed to clean up report file")
		}
	})
}
