package constants

type DestinationKind string

const (
	Snowflake DestinationKind = "snowflake"
	Postgres  DestinationKind = "postgres"
	DuckDB    DestinationKind = "duckdb"
)

var validDestinations = []DestinationKind{
	Snowflake,
	Postgres,
	DuckDB,
}

func IsValidDestination(destination DestinationKind) bool {
	for _, validDestination := range validDestinations {
		if destination == validDestination {
			return true
		}
	}

	return false
}
