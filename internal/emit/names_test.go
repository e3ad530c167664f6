package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   string
		want string
	}{
		{"Total Amount", "totalAmount"},
		{"  crème brûlée ", "cremeBrulee"},
		{"URL", "url"},
		{"HTTP status code", "httpStatusCode"},
		{"2nd attempt", "v2ndAttempt"},
		{"already_snake-case", "alreadySnakeCase"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Slug(tc.in))
		})
	}
}

func TestIdentifierAndTypeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "myVar", Identifier("myVar"))
	assert.Equal(t, "Billing.Port", Identifier("Billing.Port"))
	assert.Equal(t, "myVar", Identifier("my var"))
	assert.Equal(t, "Map<Id, Account>", TypeName(" Map<Id, Account> "))
	assert.Equal(t, "Custom_Object__c", TypeName("Custom_Object__c"))
	assert.Equal(t, "OrderLine", TypeName("order line"))
	assert.Equal(t, "Map<Id, List<Contact>>", TypeName("Map<Id, List<Contact>>"))
	assert.Equal(t, "List<String>[]", TypeName("List<String>[]"))

	for _, unusable := range []string{"???", "--", "List<>", "Set< >", "Map<Id,>", "List<Account", "<Account>"} {
		assert.Empty(t, TypeName(unusable), "TypeName(%q)", unusable)
	}
}

func TestElementType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Account", elementType("List<Account>"))
	assert.Equal(t, "Id", elementType("Set<Id>"))
	assert.Equal(t, "String", elementType("String[]"))
	assert.Equal(t, "Contact", elementType("Contact"))
}
