package translate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdb/askdb/internal/schema"
)

func testRelationships() schema.Relationships {
	return schema.Relationships{
		"users_orders": {FromColumn: "id", ToColumn: "user_id"},
	}
}

func TestTranslate_CountQuestion(t *testing.T) {
	tr := NewTranslator(testSchema(), WithClock(fixedClock()))

	result := tr.Translate("How many users do we have?")

	assert.True(t, result.Safe)
	assert.Equal(t, "SELECT COUNT(*) FROM users;", result.SQL)
	assert.Equal(t, RiskLow, result.Risk)
	assert.Equal(t, []string{"users"}, result.Plan.FromTables)
	assert.Contains(t, result.Explanation, "counts all rows in the users table(s)")
}

func TestTranslate_TopNWithDescriptiveColumn(t *testing.T) {
	tr := NewTranslator(testSchema(), WithClock(fixedClock()))

	result := tr.Translate("What are the top 5 most expensive products?")

	require.True(t, result.Safe)
	assert.Equal(t, 5, result.Plan.Limit)
	require.Len(t, result.Plan.OrderBy, 1)
	assert.Equal(t, OrderKey{Table: "products", Column: "price", Direction: DirectionDesc}, result.Plan.OrderBy[0])
	assert.Equal(t, "SELECT products.price FROM products ORDER BY products.price DESC LIMIT 5;", result.SQL)
	assert.Equal(t, RiskLow, result.Risk)
}

func TestTranslate_UnsafeQuestion(t *testing.T) {
	tr := NewTranslator(testSchema())

	result := tr.Translate("delete all orders")

	assert.False(t, result.Safe)
	assert.Empty(t, result.SQL)
	assert.Nil(t, result.Plan)
	assert.Equal(t, RiskCritical, result.Risk)
	assert.Equal(t,
		"This request appears to involve data modification which is not allowed for safety reasons.",
		result.Explanation)
	assert.Empty(t, tr.RecentTables(), "unsafe translation must not touch session state")
}

func TestTranslate_JoinFromRelationshipMetadata(t *testing.T) {
	tr := NewTranslator(testSchema(),
		WithRelationships(testRelationships()),
		WithClock(fixedClock()))

	result := tr.Translate("show users and their orders")

	require.True(t, result.Safe)
	assert.Equal(t, []string{"users", "orders"}, result.Plan.FromTables)
	assert.Contains(t, result.SQL, "JOIN orders ON users.id = orders.user_id")
}

func TestTranslate_UnrecognizedTextStillProducesPlan(t *testing.T) {
	tr := NewTranslator(testSchema(), WithClock(fixedClock()))

	result := tr.Translate("zzz qqq")

	require.True(t, result.Safe)
	assert.NotEmpty(t, result.SQL)
	assert.True(t, strings.HasSuffix(result.SQL, ";"))
	assert.Equal(t, []string{"users"}, result.Plan.FromTables)
}

func TestTranslate_MissingSchema(t *testing.T) {
	for _, tr := range []*Translator{NewTranslator(nil), NewTranslator(&schema.Schema{})} {
		result := tr.Translate("how many users?")

		assert.True(t, result.Safe)
		assert.Empty(t, result.SQL)
		assert.Nil(t, result.Plan)
		assert.Equal(t, RiskNone, result.Risk)
		assert.Equal(t, "I need database schema information to generate SQL queries.", result.Explanation)
	}
}

func TestTranslate_RecentTablesBreakTies(t *testing.T) {
	tr := NewTranslator(testSchema(), WithClock(fixedClock()))

	first := tr.Translate("how many orders are there")
	require.True(t, first.Safe)
	assert.Equal(t, []string{"orders"}, tr.RecentTables())

	second := tr.Translate("show me everything")
	assert.Equal(t, []string{"orders"}, second.Plan.FromTables)
}

func TestTranslate_SetSchemaResetsSession(t *testing.T) {
	tr := NewTranslator(testSchema())
	tr.Translate("how many orders are there")
	require.NotEmpty(t, tr.RecentTables())

	tr.SetSchema(testSchema(), nil)
	assert.Empty(t, tr.RecentTables())
}

func TestTranslate_LimitRoundTrip(t *testing.T) {
	tr := NewTranslator(testSchema(), WithClock(fixedClock()))

	for _, n := range []string{"1", "7", "250"} {
		result := tr.Translate("first " + n + " users")

		require.True(t, result.Safe)
		assert.Contains(t, result.SQL, "LIMIT "+n)
	}
}
