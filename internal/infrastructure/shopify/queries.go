package shopify

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// variantQuery resolves the variant fields used for quotes, orders and catalog suggestions
const variantQuery = `query variant($id: ID!) {
  productVariant(id: $id) {
    title
    price
    inventoryQuantity
    product {
      collections(first: 1) {
        edges {
          node {
            title
          }
        }
      }
    }
  }
}`

var queries = map[string]string{
	"variant": variantQuery,
}

// ValidateQueries parses every GraphQL document the client sends
func ValidateQueries() error {
	for name, q := range queries {
		if _, err := parser.ParseQuery(&ast.Source{Name: name, Input: q}); err != nil {
			return fmt.Errorf("invalid %s query: %w", name, err)
		}
	}
	return nil
}

func variantGID(id int64) string {
	return fmt.Sprintf("gid://shopify/ProductVariant/%d", id)
}
