package user

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"STUDENT", RoleStudent, false},
		{"student", RoleStudent, false},
		{"Alumni", RoleAlumni, false},
		{" professor ", RoleProfessor, false},
		{"admin", "", true},
		{"Stu", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseRole(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRole(%q): unexpected err: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseRole(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleStudent, RoleAlumni, RoleProfessor} {
		if !r.Valid() {
			t.Fatalf("%s should be valid", r)
		}
	}
	if Role("student").Valid() {
		t.Fatalf("lowercase role value should not be valid")
	}
	if Role("ADMIN").Valid() {
		t.Fatalf("ADMIN should not be valid")
	}
}
