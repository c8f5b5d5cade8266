package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enercore/internal/core/entity"
)

type testRow struct {
	entity.Resource

	Code      string     `db:"code"`
	Name      string     `db:"name"`
	Ignored   string     `db:"-"`
	NoTag     string     ``
	DeletedAt *time.Time `db:"deleted_at"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[testRow]()

	// Embedded Resource columns come first
	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "status")
	assert.Contains(t, cols, "version")
	assert.Contains(t, cols, "created_at")
	assert.Contains(t, cols, "updated_at")

	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "deleted_at")

	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "Ignored")
	assert.NotContains(t, cols, "NoTag")
}

func TestExtractDBColumnsPointerType(t *testing.T) {
	assert.Equal(t, ExtractDBColumns[testRow](), ExtractDBColumns[*testRow]())
}

func TestStructToMap(t *testing.T) {
	row := testRow{
		Resource: entity.NewResource("draft"),
		Code:     "X-1",
		Name:     "First",
		Ignored:  "nope",
	}

	m := StructToMap(row)
	require.NotNil(t, m)

	assert.Equal(t, "X-1", m["code"])
	assert.Equal(t, "First", m["name"])
	assert.Equal(t, "draft", m["status"])
	assert.Equal(t, row.ID, m["id"])

	_, hasIgnored := m["-"]
	assert.False(t, hasIgnored)
}

func TestStructToMapNonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("nope"))
}
