package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testListID = "6f1c2a4e-3c7b-4f5e-9a6d-1b2c3d4e5f60"
	testItemID = "0a9b8c7d-6e5f-4a3b-8c1d-2e3f4a5b6c7d"
)

func TestCreateUserInputValidate(t *testing.T) {
	valid := CreateUserInput{Email: "a@x.com", Password: "secret1", FullName: "A"}

	tests := []struct {
		name    string
		mutate  func(*CreateUserInput)
		wantErr bool
	}{
		{"valid", func(*CreateUserInput) {}, false},
		{"bad email", func(in *CreateUserInput) { in.Email = "not-an-email" }, true},
		{"display name form rejected", func(in *CreateUserInput) { in.Email = "A <a@x.com>" }, true},
		{"short password", func(in *CreateUserInput) { in.Password = "12345" }, true},
		{"blank name", func(in *CreateUserInput) { in.FullName = "  " }, true},
		{"unknown role", func(in *CreateUserInput) { in.Roles = Roles{"root"} }, true},
		{"explicit roles", func(in *CreateUserInput) { in.Roles = Roles{RoleAdmin, RoleUser} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if tt.wantErr {
				assert.True(t, IsValidation(err), "expected validation error, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateUserInputNormalize(t *testing.T) {
	in := CreateUserInput{Email: "  A@X.Com ", FullName: " Ann "}
	in.Normalize()
	assert.Equal(t, "a@x.com", in.Email)
	assert.Equal(t, "Ann", in.FullName)
}

func TestCreateItemInputValidate(t *testing.T) {
	assert.NoError(t, CreateItemInput{Name: "Milk"}.Validate())
	assert.NoError(t, CreateItemInput{Name: "Milk", Quantity: Ptr(1.5)}.Validate())
	assert.Error(t, CreateItemInput{Name: ""}.Validate())
	assert.Error(t, CreateItemInput{Name: "Milk", Quantity: Ptr(-1.0)}.Validate())
	assert.Error(t, CreateItemInput{Name: "Milk", Quantity: Ptr(math.NaN())}.Validate())
}

func TestCreateListInputValidate(t *testing.T) {
	assert.NoError(t, CreateListInput{Name: "Groceries"}.Validate())
	assert.NoError(t, CreateListInput{Name: "ab"}.Validate())
	assert.Error(t, CreateListInput{Name: "a"}.Validate())
	assert.Error(t, CreateListInput{Name: ""}.Validate())
}

func TestCreateListItemInputValidate(t *testing.T) {
	valid := CreateListItemInput{Quantity: 2, ListID: testListID, ItemID: testItemID}
	require.NoError(t, valid.Validate())

	negative := valid
	negative.Quantity = -1
	assert.Error(t, negative.Validate())

	badList := valid
	badList.ListID = "42"
	assert.True(t, IsValidation(badList.Validate()))
}

func TestPagination(t *testing.T) {
	assert.Equal(t, Pagination{Limit: 10, Offset: 0}, DefaultPagination())
	assert.NoError(t, Pagination{Limit: 1, Offset: 0}.Validate())
	assert.Error(t, Pagination{Limit: 0, Offset: 0}.Validate())
	assert.Error(t, Pagination{Limit: 5, Offset: -1}.Validate())
}

func TestSearchIsZero(t *testing.T) {
	assert.True(t, Search{}.IsZero())
	assert.True(t, Search{Term: "   "}.IsZero())
	assert.False(t, Search{Term: "mil"}.IsZero())
	assert.Equal(t, "mil", Search{Term: " mil\t"}.Text())
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("id", NewID()))
	assert.True(t, IsValidation(ValidateID("id", "abc")))
}
