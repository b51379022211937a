package importer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"droscher.com/BeerImporter/configs"
	"droscher.com/BeerImporter/pkg/importer"
	"droscher.com/BeerImporter/pkg/model"
	"droscher.com/BeerImporter/pkg/repository"
)

type PostgresTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	fs        afero.Fs
}

func TestPostgresTestSuite(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration tests. Set INTEGRATION_TEST=1 to run.")
	}

	suite.Run(t, new(PostgresTestSuite))
}

func (suite *PostgresTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("beer_tracker"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	suite.db, err = gorm.Open(postgres.Open(connStr), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	suite.Require().NoError(err)
}

func (suite *PostgresTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PostgresTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Migrator().DropTable(model.All()...))
	suite.Require().NoError(suite.db.AutoMigrate(model.All()...))

	suite.fs = afero.NewMemMapFs()
	suite.Require().NoError(afero.WriteFile(suite.fs, filepath.Join(sourceDir, "1-pilsner.json"), []byte(fullFile), 0o644))
	suite.Require().NoError(afero.WriteFile(suite.fs, filepath.Join(sourceDir, "2-broken.json"), []byte(malformedFile), 0o644))
	suite.Require().NoError(afero.WriteFile(suite.fs, filepath.Join(sourceDir, "3-porter.json"), []byte(overlappingFile), 0o644))
}

func (suite *PostgresTestSuite) run() *importer.Report {
	logger := zaptest.NewLogger(suite.T())
	repo := &repository.Repository{DB: suite.db, Logger: logger, BatchSize: 1}
	conf := configs.Import{Dir: sourceDir, Extension: ".json", DataField: "data", BatchSize: 1}

	report, err := importer.New(conf, suite.fs, repo, logger).Run(context.Background())
	suite.Require().NoError(err)

	return report
}

func (suite *PostgresTestSuite) counts() map[string]int64 {
	counts := map[string]int64{}

	for _, table := range []string{"categories", "styles", "glassware", "availability", "beers"} {
		var count int64

		suite.Require().NoError(suite.db.Table(table).Count(&count).Error)
		counts[table] = count
	}

	return counts
}

func (suite *PostgresTestSuite) TestImport_IsIdempotentAndFirstWriteWins() {
	report := suite.run()
	suite.Equal(1, report.Failed())

	first := suite.counts()
	suite.Equal(map[string]int64{"categories": 2, "styles": 2, "glassware": 1, "availability": 1, "beers": 2}, first)

	report = suite.run()
	suite.Equal(1, report.Failed())
	suite.Equal(first, suite.counts())

	var beer model.Beer

	suite.Require().NoError(suite.db.First(&beer, "id = ?", "c4f2KE").Error)
	suite.Require().NotNil(beer.Name)
	suite.Equal("'Murican Pilsner", *beer.Name)
	suite.Require().NotNil(beer.SRM)
	suite.InDelta(4.0, *beer.SRM, 0.001)
	suite.Equal(`{"icon":"i.png"}`, *beer.Labels)
}

func (suite *PostgresTestSuite) TestImport_MalformedFileLeavesNoRows() {
	suite.run()

	var count int64

	suite.Require().NoError(suite.db.Model(&model.Beer{}).Where("id = ?", "ok1").Count(&count).Error)
	suite.Zero(count, "rows from 2-broken.json must be rolled back")

	suite.Require().NoError(suite.db.Model(&model.Glassware{}).Where("id = ?", 9).Count(&count).Error)
	suite.Zero(count)
}
