package service

import (
	_ "embed"
	"fmt"

	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed example.yaml
var exampleYAML []byte

// ExampleSnapshot returns the bundled "Custom Mug" product.
func ExampleSnapshot() (domain.Snapshot, error) {
	var snapshot domain.Snapshot
	if err := yaml.Unmarshal(exampleYAML, &snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode example product: %w", err)
	}
	return snapshot, nil
}
