package postgres

// Option can be used to change the configuration of an object.
type Option[T any] interface {
	apply(T)
}

type option[T any] func(T)

func newOption[T any](f func(T)) option[T] { return option[T](f) }

func (apply option[T]) apply(val T) { apply(val) }

// DefaultClientsTableName is the default table name a ClientRepository points to.
const DefaultClientsTableName = "clients"

// WithClientsTableName allows you to specify a different table name
// that a ClientRepository should manage.
//
// The table must have the same schema of the one created by RunMigrations.
func WithClientsTableName(tableName string) Option[*ClientRepository] {
	return newOption(func(repository *ClientRepository) {
		repository.tableName = tableName
	})
}
