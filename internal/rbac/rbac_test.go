package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDefaultPolicy(t *testing.T) {
	c := NewChecker(nil)
	cases := []struct {
		role, perm string
		want       bool
	}{
		{"student", PermQuizView, true},
		{"student", PermQuizCreate, false},
		{"student", PermQuizExport, false},
		{"teacher", PermQuizCreate, true},
		{"teacher", PermQuizExport, true},
		{"teacher", "user:delete", false},
		{"admin", "anything:at-all", true},
		{"nobody", PermQuizView, false},
	}
	for _, tc := range cases {
		if got := c.Has(tc.role, tc.perm); got != tc.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestRequire(t *testing.T) {
	h := Require(PermQuizCreate)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	for role, want := range map[string]int{
		"":        http.StatusForbidden,
		"student": http.StatusForbidden,
		"teacher": http.StatusNoContent,
	} {
		req := httptest.NewRequest(http.MethodPost, "/quizzes/generate", nil)
		if role != "" {
			req = req.WithContext(WithRole(req.Context(), role))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("role %q: status %d, want %d", role, rec.Code, want)
		}
	}
}
