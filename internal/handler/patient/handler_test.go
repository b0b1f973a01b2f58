package patient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/fenixclinic/clinic-api/internal/middleware"
	"github.com/fenixclinic/clinic-api/internal/model"
)

type fakeService struct {
	CreateFn func(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	GetFn    func(ctx context.Context, id int64) (*model.Patient, error)
	SearchFn func(ctx context.Context, query string, skip, limit int) ([]*model.Patient, error)
}

func (f *fakeService) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	return f.CreateFn(ctx, req)
}

func (f *fakeService) Get(ctx context.Context, id int64) (*model.Patient, error) {
	return f.GetFn(ctx, id)
}

func (f *fakeService) List(ctx context.Context, skip, limit int) ([]*model.Patient, int, error) {
	return nil, 0, nil
}

func (f *fakeService) Search(ctx context.Context, query string, skip, limit int) ([]*model.Patient, error) {
	return f.SearchFn(ctx, query, skip, limit)
}

func (f *fakeService) Count(ctx context.Context) (int, error) { return 0, nil }

func (f *fakeService) Update(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	return nil, nil
}

func (f *fakeService) Manage(ctx context.Context, id int64, req *model.ManagePatientRequest) (*model.Patient, error) {
	return nil, nil
}

func (f *fakeService) Delete(ctx context.Context, id int64) error { return nil }

func newTestRouter(svc *fakeService, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if authenticated {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.IdentityKey, &model.User{ID: 1, Email: "doc@clinic.test"})
		})
	}
	api := r.Group("")
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func doGet(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRoutesRequireIdentity(t *testing.T) {
	r := newTestRouter(&fakeService{}, false)

	w := doGet(r, "/patients/search?query=garcia")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSearchRejectsShortQuery(t *testing.T) {
	svc := &fakeService{
		SearchFn: func(ctx context.Context, query string, skip, limit int) ([]*model.Patient, error) {
			t.Fatal("service must not be called for short queries")
			return nil, nil
		},
	}
	r := newTestRouter(svc, true)

	for _, q := range []string{"", "ab", "%20a%20"} {
		w := doGet(r, "/patients/search?query="+q)
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", q)
	}
}

func TestSearchTrimsAndDelegates(t *testing.T) {
	var gotQuery string
	svc := &fakeService{
		SearchFn: func(ctx context.Context, query string, skip, limit int) ([]*model.Patient, error) {
			gotQuery = query
			return []*model.Patient{{ID: 1, FirstName: "Garcia"}}, nil
		},
	}
	r := newTestRouter(svc, true)

	w := doGet(r, "/patients/search?query=%20garcia%20")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "garcia", gotQuery)
}

func TestGetRejectsBadID(t *testing.T) {
	r := newTestRouter(&fakeService{}, true)

	for _, id := range []string{"abc", "0", "-3"} {
		w := doGet(r, "/patients/"+id)
		assert.Equal(t, http.StatusBadRequest, w.Code, "id %q", id)
	}
}
