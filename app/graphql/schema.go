// Package graphql defines Vendra's read-only GraphQL surface: products,
// sales, and the dashboard summary. Mutations stay on the REST API where
// the validation layer lives.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/vendralabs/vendra/app/services"
	"github.com/vendralabs/vendra/app/store"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"quantity": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"price":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
	},
})

var saleType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Sale",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"productId":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"productName":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"quantitySold": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"totalAmount":  &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"saleDate":     &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var summaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Summary",
	Fields: graphql.Fields{
		"totalSales":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"totalInventory": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"productCount":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"recentSales":    &graphql.Field{Type: graphql.NewList(saleType)},
	},
})

// NewRootQuery builds the query object over the given store.
func NewRootQuery(st store.Store) *graphql.Object {
	dashboard := services.NewDashboardService(st)

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return st.ListProducts(), nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					if id < 0 {
						return nil, store.ErrProductNotFound
					}
					product, err := st.GetProduct(uint(id))
					if err != nil {
						return nil, err
					}
					return product, nil
				},
			},
			"sales": &graphql.Field{
				Type: graphql.NewList(saleType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return st.ListSales(), nil
				},
			},
			"summary": &graphql.Field{
				Type: summaryType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return dashboard.Summary(), nil
				},
			},
		},
	})
}
