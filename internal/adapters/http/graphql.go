package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/emissiond/emissiond/internal/core/domain"
)

// queryInputs converts raw GraphQL arguments into the same query selector
// the REST handlers build, with the same validation.
func queryInputs(args map[string]interface{}) (domain.Area, domain.TimeRange, domain.Page, error) {
	var tr domain.TimeRange
	var page domain.Page

	area, err := areaFromParams(args["geoframe"].(string), args["country"].(string), args["polygon"].(string))
	if err != nil {
		return area, tr, page, err
	}

	if v := args["begin"].(string); v != "" {
		t, err := parseTime(v)
		if err != nil {
			return area, tr, page, fmt.Errorf("begin: %w", err)
		}
		tr.Begin = &t
	}
	if v := args["end"].(string); v != "" {
		t, err := parseTime(v)
		if err != nil {
			return area, tr, page, fmt.Errorf("end: %w", err)
		}
		tr.End = &t
	}

	if n := args["limit"].(int); n > 0 {
		page.Limit = &n
	}
	if n := args["offset"].(int); n > 0 {
		page.Offset = &n
	}

	return area, tr, page, nil
}

// areaArgs are the filter arguments shared by every measurement query.
func areaArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"geoframe": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
		"country":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
		"polygon":  &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
		"begin":    &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
		"end":      &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
		"limit":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
		"offset":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
	}
}

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	measurementType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Measurement",
		Fields: graphql.Fields{
			"value":     &graphql.Field{Type: graphql.Float},
			"timestamp": &graphql.Field{Type: graphql.DateTime},
			"location":  &graphql.Field{Type: geoPointType},
		},
	})

	dailyAverageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "DailyAverage",
		Fields: graphql.Fields{
			"average": &graphql.Field{Type: graphql.Float},
			"start":   &graphql.Field{Type: graphql.DateTime},
			"end":     &graphql.Field{Type: graphql.DateTime},
			"day":     &graphql.Field{Type: graphql.String},
		},
	})

	valueStatsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ValueStatistics",
		Fields: graphql.Fields{
			"count":              &graphql.Field{Type: graphql.Int},
			"average":            &graphql.Field{Type: graphql.Float},
			"standard_deviation": &graphql.Field{Type: graphql.Float},
			"min":                &graphql.Field{Type: graphql.Float},
			"max":                &graphql.Field{Type: graphql.Float},
		},
	})

	timeStatsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TimeStatistics",
		Fields: graphql.Fields{
			"start": &graphql.Field{Type: graphql.DateTime},
			"end":   &graphql.Field{Type: graphql.DateTime},
			"day":   &graphql.Field{Type: graphql.String},
		},
	})

	dailyStatisticType := graphql.NewObject(graphql.ObjectConfig{
		Name: "DailyStatistic",
		Fields: graphql.Fields{
			"value": &graphql.Field{Type: valueStatsType},
			"time":  &graphql.Field{Type: timeStatsType},
		},
	})

	boundingBoxType := graphql.NewObject(graphql.ObjectConfig{
		Name: "BoundingBox",
		Fields: graphql.Fields{
			"west":  &graphql.Field{Type: graphql.Float},
			"south": &graphql.Field{Type: graphql.Float},
			"east":  &graphql.Field{Type: graphql.Float},
			"north": &graphql.Field{Type: graphql.Float},
		},
	})

	countryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Country",
		Fields: graphql.Fields{
			"code": &graphql.Field{Type: graphql.String},
			"name": &graphql.Field{Type: graphql.String},
			"box":  &graphql.Field{Type: boundingBoxType},
		},
	})

	storeStatusType := graphql.NewObject(graphql.ObjectConfig{
		Name: "StoreStatus",
		Fields: graphql.Fields{
			"points":      &graphql.Field{Type: graphql.Int},
			"files":       &graphql.Field{Type: graphql.Int},
			"last_import": &graphql.Field{Type: graphql.DateTime},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"measurements": &graphql.Field{
				Type:        graphql.NewList(measurementType),
				Description: "Carbon monoxide measurements inside an area",
				Args:        areaArgs(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					area, tr, page, err := queryInputs(p.Args)
					if err != nil {
						return nil, err
					}
					fc, err := deps.Measurements.Points(p.Context, area, tr, page)
					if err != nil {
						return nil, err
					}
					result := make([]map[string]interface{}, 0, len(fc.Features))
					for _, f := range fc.Features {
						result = append(result, map[string]interface{}{
							"value":     f.Properties.Carbonmonoxide,
							"timestamp": f.Properties.Timestamp,
							"location": map[string]interface{}{
								"lon": f.Geometry.Coordinates[0],
								"lat": f.Geometry.Coordinates[1],
							},
						})
					}
					return result, nil
				},
			},
			"dailyAverages": &graphql.Field{
				Type:        graphql.NewList(dailyAverageType),
				Description: "Daily mean of the measurements inside an area",
				Args:        areaArgs(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					area, tr, page, err := queryInputs(p.Args)
					if err != nil {
						return nil, err
					}
					return deps.Measurements.DailyAverages(p.Context, area, tr, page)
				},
			},
			"dailyStatistics": &graphql.Field{
				Type:        graphql.NewList(dailyStatisticType),
				Description: "Per-day value statistics for an area",
				Args:        areaArgs(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					area, tr, page, err := queryInputs(p.Args)
					if err != nil {
						return nil, err
					}
					stats, err := deps.Statistics.Daily(p.Context, area, tr, page)
					if err != nil {
						return nil, err
					}
					// Convert so the nullable standard deviation keeps a
					// GraphQL-safe field name.
					result := make([]map[string]interface{}, 0, len(stats))
					for _, s := range stats {
						value := map[string]interface{}{
							"count":   s.Value.Count,
							"average": s.Value.Average,
							"min":     s.Value.Min,
							"max":     s.Value.Max,
						}
						if s.Value.StdDev != nil {
							value["standard_deviation"] = *s.Value.StdDev
						}
						result = append(result, map[string]interface{}{
							"value": value,
							"time": map[string]interface{}{
								"start": s.Time.Start,
								"end":   s.Time.End,
								"day":   s.Time.Day,
							},
						})
					}
					return result, nil
				},
			},
			"countries": &graphql.Field{
				Type:        graphql.NewList(countryType),
				Description: "Country codes accepted by the country filter",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					codes := domain.CountryCodes()
					result := make([]map[string]interface{}, 0, len(codes))
					for _, code := range codes {
						cb, ok := domain.CountryBoxByCode(code)
						if !ok {
							continue
						}
						result = append(result, map[string]interface{}{
							"code": code,
							"name": cb.Name,
							"box":  cb.Box,
						})
					}
					return result, nil
				},
			},
			"status": &graphql.Field{
				Type:        storeStatusType,
				Description: "Measurement store totals and last import time",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Imports.Status(p.Context)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
