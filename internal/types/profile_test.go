//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentProfile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		profile StudentProfile
		wantErr bool
		errMsg  string
	}{
		{
			name:    "minimal profile",
			profile: StudentProfile{Name: "A", Email: "a@x.com"},
		},
		{
			name: "full profile with unknown certificate tag",
			profile: StudentProfile{
				Name:         "Jane Doe",
				Email:        "jane@example.com",
				Skills:       []string{"Go", "SQL"},
				Certificates: []CertificateRef{{Path: "/tmp/a.pdf", Type: "pdf"}, {Path: "/tmp/b.bin", Type: "bogus"}},
			},
		},
		{
			name:    "missing name",
			profile: StudentProfile{Email: "a@x.com"},
			wantErr: true,
			errMsg:  "Name",
		},
		{
			name:    "invalid email",
			profile: StudentProfile{Name: "A", Email: "not-an-email"},
			wantErr: true,
			errMsg:  "email",
		},
		{
			name: "certificate without path",
			profile: StudentProfile{
				Name:         "A",
				Email:        "a@x.com",
				Certificates: []CertificateRef{{Type: "pdf"}},
			},
			wantErr: true,
			errMsg:  "Path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStudentProfile_JSONFieldNames(t *testing.T) {
	raw := `{
		"name": "A",
		"email": "a@x.com",
		"linkedin": "in/a",
		"github": "gh/a",
		"job_role": "Backend Engineer",
		"job_description": "Build APIs",
		"work_experience": ["Intern at X"],
		"certificates": [{"path": "c.pdf", "type": "pdf"}]
	}`

	var p StudentProfile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "in/a", p.LinkedIn)
	assert.Equal(t, "gh/a", p.GitHub)
	assert.Equal(t, "Backend Engineer", p.JobRole)
	assert.Equal(t, []string{"Intern at X"}, p.WorkExperience)
	require.Len(t, p.Certificates, 1)
	assert.Equal(t, CertificatePDF, p.Certificates[0].Type)
}

func TestStudentProfile_HasJobRole(t *testing.T) {
	assert.False(t, (&StudentProfile{}).HasJobRole())
	assert.False(t, (&StudentProfile{JobRole: "Default"}).HasJobRole())
	assert.False(t, (&StudentProfile{JobRole: "  "}).HasJobRole())
	assert.True(t, (&StudentProfile{JobRole: "Data Analyst"}).HasJobRole())
}

