package gormcondition_test

import (
	"os"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"github.com/theplant/testenv"
	"gorm.io/datatypes"
	"gorm.io/gorm/logger"

	"github.com/theplant/sina/condition"
	"github.com/theplant/sina/condition/gormcondition"
)

// Runs against a postgres container; set SINA_TEST_DB=1 with docker available.
func TestScopeWithDatabase(t *testing.T) {
	if os.Getenv("SINA_TEST_DB") == "" {
		t.Skip("SINA_TEST_DB not set")
	}

	env, err := testenv.New().DBEnable(true).SetUp()
	require.NoError(t, err)
	defer env.TearDown()

	tdb := env.DB
	tdb.Logger = tdb.Logger.LogMode(logger.Info)

	require.NoError(t, tdb.Migrator().DropTable(&Product{}))
	require.NoError(t, tdb.AutoMigrate(&Product{}))

	products := []*Product{
		{Name: "Alpha Shoe", Country: "US", Region: "AMER", CategoryID: "shoes", Price: 10, Attributes: datatypes.JSON(`{"color":"red"}`)},
		{Name: "Beta Boot", Country: "DE", Region: "EMEA", CategoryID: "boots", Price: 20, Attributes: datatypes.JSON(`{"color":"black"}`)},
		{Name: "Gamma Shoe", Country: "FR", Region: "EMEA", CategoryID: "shoes", Price: 30, Attributes: datatypes.JSON(`{"color":"red"}`)},
	}
	require.NoError(t, tdb.Create(&products).Error)

	tests := []struct {
		name      string
		condition condition.Condition
		opts      []gormcondition.Option
		want      []string
	}{
		{
			name: "or group and region",
			condition: condition.And(
				condition.Or(
					condition.NewSimple("country", condition.OperatorEq, "DE"),
					condition.NewSimple("country", condition.OperatorEq, "FR"),
				),
				condition.Or(condition.NewSimple("region", condition.OperatorEq, "EMEA")),
			),
			want: []string{"Beta Boot", "Gamma Shoe"},
		},
		{
			name:      "between",
			condition: condition.NewSimple("price", condition.OperatorBetween, []any{15, 30}),
			want:      []string{"Beta Boot", "Gamma Shoe"},
		},
		{
			name:      "case insensitive contains",
			condition: condition.NewSimple("name", condition.OperatorCo, "SHOE"),
			opts:      []gormcondition.Option{gormcondition.WithFold()},
			want:      []string{"Alpha Shoe", "Gamma Shoe"},
		},
		{
			name:      "json attribute",
			condition: condition.NewSimple("color", condition.OperatorEq, "red"),
			opts:      []gormcondition.Option{gormcondition.WithJSONColumn("attributes")},
			want:      []string{"Alpha Shoe", "Gamma Shoe"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result []*Product
			err := tdb.Scopes(gormcondition.Scope(tt.condition, tt.opts...)).Order("id").Find(&result).Error
			require.NoError(t, err)
			require.Equal(t, tt.want, lo.Map(result, func(p *Product, _ int) string { return p.Name }))
		})
	}
}
