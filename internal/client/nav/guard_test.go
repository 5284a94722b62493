package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name          string
		authenticated bool
		path          string
		want          Decision
	}{
		{
			name: "protected route while anonymous",
			path: RouteUpload,
			want: Decision{Action: RedirectLogin, Target: RouteLogin, ReturnURL: RouteUpload},
		},
		{
			name:          "protected route while authenticated",
			authenticated: true,
			path:          RouteUpload,
			want:          Decision{Action: Allow, Target: RouteUpload},
		},
		{
			name: "login route while anonymous",
			path: RouteLogin,
			want: Decision{Action: Allow, Target: RouteLogin},
		},
		{
			name:          "login route while authenticated",
			authenticated: true,
			path:          RouteLogin,
			want:          Decision{Action: RedirectHome, Target: RouteUpload},
		},
		{
			name: "unknown path redirects home",
			path: "/nowhere",
			want: Decision{Action: RedirectHome, Target: RouteUpload},
		},
		{
			name:          "root path redirects home",
			authenticated: true,
			path:          "/",
			want:          Decision{Action: RedirectHome, Target: RouteUpload},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.authenticated, tt.path))
		})
	}
}

func TestDecide_ReevaluatedPerAttempt(t *testing.T) {
	// same path, different session state: decisions must differ
	first := Decide(false, RouteUpload)
	second := Decide(true, RouteUpload)
	assert.Equal(t, RedirectLogin, first.Action)
	assert.Equal(t, Allow, second.Action)
}
