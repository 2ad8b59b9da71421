package webapi

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wavemark/radargw/internal/radarcore/controls"
	"github.com/wavemark/radargw/internal/radarcore/model"
	"github.com/wavemark/radargw/internal/radarcore/registry"
	"github.com/wavemark/radargw/internal/radarcore/spoke"
	"github.com/wavemark/radargw/internal/testutil"
)

func TestHandleListRadarsReturnsActiveRadars(t *testing.T) {
	reg := registry.New(nil, false)
	reg.Located(&model.RadarInfo{Key: "Furuno-10.0.0.5", Brand: model.BrandFuruno, Addr: &net.UDPAddr{}, Ranges: []uint32{1000}})

	srv := NewServer(reg)

	req := testutil.NewTestRequest(http.MethodGet, "/v1/radars")
	rec := testutil.NewTestRecorder()
	srv.ServeHTTP(rec, req)

	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Furuno-10.0.0.5") {
		t.Errorf("body %q missing expected radar key", rec.Body.String())
	}
}

func TestHandleControlsUnknownRadarIsNotFound(t *testing.T) {
	srv := NewServer(registry.New(nil, false))

	req := testutil.NewTestRequest(http.MethodGet, "/v1/controls?radar=99")
	rec := testutil.NewTestRecorder()
	srv.ServeHTTP(rec, req)

	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)
}

func TestHandleControlsGetEnumeratesRegisteredRadar(t *testing.T) {
	srv := NewServer(registry.New(nil, false))
	ctrl := controls.New(1, true, false)
	srv.RegisterRadar(1, ctrl, spoke.NewHub())

	req := testutil.NewTestRequest(http.MethodGet, "/v1/controls?radar=1")
	rec := testutil.NewTestRecorder()
	srv.ServeHTTP(rec, req)

	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
}

func TestHandleVersionReportsBuildInfo(t *testing.T) {
	srv := NewServer(registry.New(nil, false))

	req := testutil.NewTestRequest(http.MethodGet, "/v1/version")
	rec := testutil.NewTestRecorder()
	srv.ServeHTTP(rec, req)

	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `"version"`) {
		t.Errorf("body %q missing version field", rec.Body.String())
	}
}

func TestHandleControlsPostAcceptsNumericString(t *testing.T) {
	srv := NewServer(registry.New(nil, false))
	ctrl := controls.New(1, true, false)
	srv.RegisterRadar(1, ctrl, spoke.NewHub())

	req := httptest.NewRequest(http.MethodPost, "/v3/controls?radar=1", strings.NewReader(`{"id":"gain","value":"42"}`))
	rec := testutil.NewTestRecorder()
	srv.ServeHTTP(rec, req)

	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
}

func TestHandleControlsPostAcceptsEnumLabel(t *testing.T) {
	srv := NewServer(registry.New(nil, false))
	ctrl := controls.New(1, true, false)
	srv.RegisterRadar(1, ctrl, spoke.NewHub())

	req := httptest.NewRequest(http.MethodPost, "/v3/controls?radar=1", strings.NewReader(`{"id":"interferenceRejection","value":"medium"}`))
	rec := testutil.NewTestRecorder()
	srv.ServeHTTP(rec, req)

	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	select {
	case cmdReq := <-ctrl.CommandRequests():
		if cmdReq.Value != 2 {
			t.Errorf("forwarded value = %v, want 2 (label \"medium\" resolved)", cmdReq.Value)
		}
	default:
		t.Fatal("expected a forwarded command request")
	}
}

func TestHandleControlsPostRejectsUnresolvableValue(t *testing.T) {
	srv := NewServer(registry.New(nil, false))
	ctrl := controls.New(1, true, false)
	srv.RegisterRadar(1, ctrl, spoke.NewHub())

	req := httptest.NewRequest(http.MethodPost, "/v3/controls?radar=1", strings.NewReader(`{"id":"gain","value":"not-a-number"}`))
	rec := testutil.NewTestRecorder()
	srv.ServeHTTP(rec, req)

	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
}

func TestHandleControlsMissingRadarParamIsBadRequest(t *testing.T) {
	srv := NewServer(registry.New(nil, false))

	req := testutil.NewTestRequest(http.MethodGet, "/v1/controls")
	rec := testutil.NewTestRecorder()
	srv.ServeHTTP(rec, req)

	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
}
