package repository

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"testing"

	models "gatorkeys/internal/user/model"
	appErrors "gatorkeys/pkg/errors"
	"gatorkeys/pkg/logger"
)

var testDB *bun.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("gatorkeys"),
		postgres.WithUsername("gator"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		log.Printf("failed to get connection string: %v", err)
	}

	connector := pgdriver.NewConnector(pgdriver.WithDSN(connStr))
	sqlDB := sql.OpenDB(connector)
	testDB = bun.NewDB(sqlDB, pgdialect.New())

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	if _, err := testDB.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx); err != nil {
		testDB.Close()
		log.Fatalf("failed to create users table: %v", err)
	}

	code := m.Run()

	testDB.Close()

	os.Exit(code)
}

func cleanupUsers(t *testing.T) {
	t.Cleanup(func() {
		_, err := testDB.ExecContext(context.Background(), `TRUNCATE TABLE users RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	})
}

func Test_CreateUser(t *testing.T) {
	cleanupUsers(t)

	repo := NewUserRepository(testDB, logger.Logger{})
	u := models.User{Email: "albert@ufl.edu", PasswordHash: "x", Verified: true}

	err := repo.CreateUser(context.Background(), &u)
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
}

func Test_GetUserByID(t *testing.T) {
	cleanupUsers(t)

	repo := NewUserRepository(testDB, logger.Logger{})
	u := models.User{Email: "albert@ufl.edu", PasswordHash: "x", Verified: true}
	require.NoError(t, repo.CreateUser(context.Background(), &u))

	fetched, err := repo.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, fetched.Email)
	assert.Equal(t, u.ID, fetched.ID)
}

func Test_GetUserByEmail(t *testing.T) {
	cleanupUsers(t)

	repo := NewUserRepository(testDB, logger.Logger{})
	u := models.User{Email: "albert@ufl.edu", PasswordHash: "x", Verified: true}
	require.NoError(t, repo.CreateUser(context.Background(), &u))

	fetched, err := repo.GetUserByEmail(context.Background(), "albert@ufl.edu")
	require.NoError(t, err)
	assert.Equal(t, u.ID, fetched.ID)

	_, err = repo.GetUserByEmail(context.Background(), "nobody@ufl.edu")
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeNotFound, appErrors.CodeOf(err))
}

func Test_EmailExists(t *testing.T) {
	cleanupUsers(t)

	repo := NewUserRepository(testDB, logger.Logger{})
	u := models.User{Email: "albert@ufl.edu", PasswordHash: "x", Verified: true}
	require.NoError(t, repo.CreateUser(context.Background(), &u))

	exists, err := repo.EmailExists(context.Background(), "albert@ufl.edu")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.EmailExists(context.Background(), "nobody@ufl.edu")
	require.NoError(t, err)
	assert.False(t, exists)
}
