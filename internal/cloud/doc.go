// Package cloud holds the cloud-side record shapes (snake_case columns,
// ISO-8601 timestamps, owning user_id) and the translation functions between
// them and the local models.
//
// Translation is pure and total: every model field has a column and every
// column has a field. Absent optional columns become nil, never an error.
// user_id is injected on the way up and dropped on the way down because local
// records are not user-scoped.
//
// The Postgres repositories live in the subpackages under repositories/.
package cloud
