package config

const (
	// Configuration file paths
	ConfigPathCatalog    = "configs/catalog.yaml"
	ConfigPathExpedition = "configs/expedition.toml"

	// JSON schema the catalog document is checked against before sync
	ConfigPathCatalogSchema = "configs/schemas/catalog.schema.json"
)
