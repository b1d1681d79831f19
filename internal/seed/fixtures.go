package seed

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/eleven-am/listkeeper/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures are the raw records the orchestrator inserts.
type Fixtures struct {
	Users []UserFixture `yaml:"users"`
	Items []ItemFixture `yaml:"items"`
	Lists []ListFixture `yaml:"lists"`
}

type UserFixture struct {
	FullName string   `yaml:"full_name"`
	Email    string   `yaml:"email"`
	Password string   `yaml:"password"`
	Roles    []string `yaml:"roles,omitempty"`
}

type ItemFixture struct {
	Name     string   `yaml:"name"`
	Quantity *float64 `yaml:"quantity,omitempty"`
}

type ListFixture struct {
	Name string `yaml:"name"`
}

// DefaultFixtures returns the fixture set compiled into the binary.
func DefaultFixtures() (*Fixtures, error) {
	return ParseFixtures(defaultFixtures)
}

// LoadFixtures reads a fixture file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the fixtures can produce a populated demo list.
func (f *Fixtures) Validate() error {
	if len(f.Users) == 0 {
		return fmt.Errorf("fixtures: at least one user is required")
	}
	if len(f.Lists) == 0 {
		return fmt.Errorf("fixtures: at least one list is required")
	}

	seen := make(map[string]struct{}, len(f.Users))
	for i, u := range f.Users {
		email := domain.NormalizeEmail(u.Email)
		if _, dup := seen[email]; dup {
			return fmt.Errorf("fixtures: user %d: duplicate email %s", i, email)
		}
		seen[email] = struct{}{}

		if _, err := u.roles(); err != nil {
			return fmt.Errorf("fixtures: user %d: %w", i, err)
		}
	}
	return nil
}

func (u UserFixture) roles() (domain.Roles, error) {
	roles := make(domain.Roles, 0, len(u.Roles))
	for _, r := range u.Roles {
		role, err := domain.ParseRole(r)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func (u UserFixture) input() domain.CreateUserInput {
	roles, _ := u.roles()
	return domain.CreateUserInput{
		Email:    u.Email,
		Password: u.Password,
		FullName: u.FullName,
		Roles:    roles,
	}
}

// demoIndex returns the position of the demo user: the one with email, or
// the first user when email is empty.
func (f *Fixtures) demoIndex(email string) (int, error) {
	if email == "" {
		return 0, nil
	}
	want := domain.NormalizeEmail(email)
	for i, u := range f.Users {
		if domain.NormalizeEmail(u.Email) == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("fixtures: demo user %s is not among the fixture users", email)
}
