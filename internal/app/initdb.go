package app

import (
	"os"
	"runtime/debug"

	"github.com/drwskincare/storefront/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrSchemaChangeRefused is returned when a schema change targets a database
// other than a local sqlite file without being forced.
var ErrSchemaChangeRefused = errors.New("catalog tables are managed outside the storefront; schema changes are limited to sqlite unless forced")

func (a *Application) allowSchemaChange(force bool) error {
	if force || a.gormDB.Dialector.Name() == "sqlite" {
		return nil
	}
	return errors.WithStack(ErrSchemaChangeRefused)
}

// MigrateDB creates or alters the catalog tables to match the models.
func (a *Application) MigrateDB(track, force bool) (err error) {
	if err := a.allowSchemaChange(force); err != nil {
		return err
	}
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEGUB_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	db := a.gormDB
	if track {
		db = db.Debug()
	}
	if err := db.Migrator().AutoMigrate(domain.Tables...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}

// InitDb drops and recreates the catalog tables.
func (a *Application) InitDb(force bool) error {
	if err := a.allowSchemaChange(force); err != nil {
		return err
	}
	if err := a.gormDB.Migrator().DropTable(domain.Tables...); err != nil {
		return errors.Wrap(err, "drop tables")
	}
	return errors.Wrap(a.gormDB.Migrator().AutoMigrate(domain.Tables...), "auto migrate")
}

// checkSchema warns about catalog tables that are missing. Startup never
// migrates, so a missing table shows up as an unclassified store error on
// the first request.
func (a *Application) checkSchema() []string {
	var missing []string
	m := a.gormDB.Migrator()
	for _, t := range domain.Tables {
		if !m.HasTable(t) {
			name := ""
			if tn, ok := t.(interface{ TableName() string }); ok {
				name = tn.TableName()
			}
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		zap.L().Warn("catalog tables missing", zap.Strings("tables", missing))
	}
	return missing
}
