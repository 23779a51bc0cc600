package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"inventory/internal/core/entity"
	"inventory/internal/core/id"
)

type mockRecord struct {
	entity.BaseEntity
	Name     string  `db:"name" json:"name"`
	Note     *string `db:"note" json:"note"`
	Internal string  `db:"-"`
	Untagged string
}

func TestExtractDBColumns_EmbeddedBase(t *testing.T) {
	cols := ExtractDBColumns[mockRecord]()

	assert.Equal(t, []string{"id", "created_at", "updated_at", "name", "note"}, cols)
	assert.Equal(t, cols, ExtractDBColumns[*mockRecord]())
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	rec := mockRecord{
		BaseEntity: entity.BaseEntity{ID: id.New(), CreatedAt: now, UpdatedAt: now},
		Name:       "Widget",
		Internal:   "skip",
		Untagged:   "skip",
	}

	m := StructToMap(&rec)

	assert.Equal(t, rec.ID, m["id"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, "Widget", m["name"])
	assert.Nil(t, m["note"])
	assert.Len(t, m, 5)
}

func TestStructToMap_NotStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap((*mockRecord)(nil)))
	assert.Nil(t, ExtractDBColumns[int]())
}
