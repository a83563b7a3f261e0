package database

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialectFor(t *testing.T) {
	_, err := dialectFor("postgres")
	assert.NoError(t, err)

	_, err = dialectFor("sqlite")
	assert.NoError(t, err)

	_, err = dialectFor("mysql")
	assert.Error(t, err)
}

func TestMigrations_EmbeddedPerDriver(t *testing.T) {
	for _, driver := range []string{"postgres", "sqlite"} {
		files, err := fs.Glob(migrations, "migrations/"+driver+"/*.sql")
		assert.NoError(t, err)
		assert.NotEmpty(t, files, driver)
	}
}
