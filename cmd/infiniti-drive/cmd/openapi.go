package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/infinitidrive/infiniti-drive/api/openapi"
	"github.com/infinitidrive/infiniti-drive/internal/api/handlers"
	"github.com/infinitidrive/infiniti-drive/internal/config"
	"github.com/infinitidrive/infiniti-drive/internal/inventory"
)

func openapiCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document",
		Long:  "Registers every API operation without starting anything and prints the\nresulting OpenAPI 3.1 document.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := renderOpenAPI(format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format (json, yaml)")

	return cmd
}

func renderOpenAPI(format string) ([]byte, error) {
	api := openapi.NewAPI(echo.New(), Version)
	inv := inventory.New(nil, slog.New(slog.DiscardHandler))
	handlers.RegisterCatalogueRoutes(api, handlers.NewCatalogueHandler(inv, 0))
	handlers.RegisterEnquiryRoutes(api, handlers.NewEnquiryHandler(nil, inv))
	handlers.RegisterSiteRoutes(api, handlers.NewSiteHandler(config.SiteConfig{}))

	doc, err := json.MarshalIndent(api.OpenAPI(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding OpenAPI document: %w", err)
	}

	switch format {
	case "json":
		return append(doc, '\n'), nil
	case "yaml":
		return jsonToYAML(doc)
	default:
		return nil, fmt.Errorf("unknown format %q (json, yaml)", format)
	}
}

// jsonToYAML re-encodes a JSON document as block-style YAML, keeping key order.
func jsonToYAML(doc []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(doc, &node); err != nil {
		return nil, fmt.Errorf("parsing OpenAPI document: %w", err)
	}
	clearStyle(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("encoding OpenAPI YAML: %w", err)
	}
	return out, nil
}

func clearStyle(n *yaml.Node) {
	if n.Kind != yaml.ScalarNode {
		n.Style = 0
	}
	for _, c := range n.Content {
		clearStyle(c)
	}
}
