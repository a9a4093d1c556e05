package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/workspace-mcp/internal/google"
	"github.com/teemow/workspace-mcp/internal/operation"
)

func newGenerateDocsCmd() *cobra.Command {
	var (
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate MCP tool documentation",
		Long: `Generate markdown documentation for all available MCP tools and resources.
This command introspects the registered operations and outputs their documentation
in markdown format, ensuring the documentation is always accurate and in sync
with the actual tool implementations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateDocs(cmd.ErrOrStderr(), outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runGenerateDocs(stderr io.Writer, outputFile string) error {
	// No credentials are needed to describe the operations.
	a, err := newApp(context.Background(), google.Credential{}, appOptions{logger: quietLogger(stderr)})
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Close()
	}()

	markdown := generateToolsMarkdown(a.registry.Operations(), a.registry.Resources())

	// Write to output
	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(markdown), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(stderr, "Documentation written to: %s\n", outputFile)
	} else {
		fmt.Print(markdown)
	}

	return nil
}

func generateToolsMarkdown(ops []operation.Descriptor, res []operation.ResourceDescriptor) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# MCP Tools Reference\n\n")
	sb.WriteString("This document provides a complete reference of all tools and resources available when running workspace-mcp as an MCP server.\n\n")
	sb.WriteString("**Note:** This documentation is automatically generated from the tool definitions.\n\n")

	// Group tools by category
	toolsByCategory := groupToolsByCategory(ops)

	// Table of contents
	sb.WriteString("## Table of Contents\n\n")
	categories := make([]string, 0, len(toolsByCategory))
	for category := range toolsByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		sb.WriteString(fmt.Sprintf("- [%s](#%s)\n", category, anchor(category)))
	}
	if len(res) > 0 {
		sb.WriteString("- [Resources](#resources)\n")
	}
	sb.WriteString("\n")

	// Authorization note
	sb.WriteString("## Authorization\n\n")
	sb.WriteString("All Google API tools use the credential configured through `CLIENT_ID`, `CLIENT_SECRET`, `REDIRECT_URI` and `REFRESH_TOKEN`:\n\n")
	sb.WriteString("- **No refresh token:** call `generate_auth_url`, approve access, then `exchange_code_for_tokens`\n")
	sb.WriteString("- **Failures:** every tool reports errors as a result with `isError` set, never as a protocol error\n\n")

	// Generate documentation for each category
	for _, category := range categories {
		categoryTools := toolsByCategory[category]
		sort.Slice(categoryTools, func(i, j int) bool {
			return categoryTools[i].Name < categoryTools[j].Name
		})

		sb.WriteString(fmt.Sprintf("## %s\n\n", category))

		for _, tool := range categoryTools {
			sb.WriteString(generateToolMarkdown(tool))
			sb.WriteString("\n")
		}
	}

	if len(res) > 0 {
		sb.WriteString("## Resources\n\n")
		for _, r := range res {
			sb.WriteString(fmt.Sprintf("### %s\n\n", r.Name))
			sb.WriteString(fmt.Sprintf("`%s` (%s)\n\n", r.URITemplate, r.ContentType()))
			if r.Description != "" {
				sb.WriteString(r.Description + "\n\n")
			}
		}
	}

	return sb.String()
}

func anchor(heading string) string {
	return strings.ToLower(strings.ReplaceAll(heading, " ", "-"))
}

func groupToolsByCategory(ops []operation.Descriptor) map[string][]operation.Descriptor {
	categories := make(map[string][]operation.Descriptor)
	for _, d := range ops {
		category := getCategory(d.Service)
		categories[category] = append(categories[category], d)
	}
	return categories
}

func getCategory(service string) string {
	switch service {
	case "oauth":
		return "Authentication Tools"
	case "gmail":
		return "Gmail Tools"
	case "drive":
		return "Google Drive Tools"
	case "calendar":
		return "Google Calendar Tools"
	case "docs":
		return "Google Docs Tools"
	case "sheets":
		return "Google Sheets Tools"
	case "slides":
		return "Google Slides Tools"
	default:
		return "Other"
	}
}

// jsonType is the JSON schema type a field is advertised with.
func jsonType(t operation.FieldType) string {
	switch t {
	case operation.TypeInteger:
		return "number"
	case operation.TypeStringArray, operation.TypeStringMatrix:
		return "array"
	default:
		return string(t)
	}
}

func generateToolMarkdown(d operation.Descriptor) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("### %s\n\n", d.Name))
	if d.Description != "" {
		sb.WriteString(d.Description + "\n\n")
	}
	if d.ReadOnly {
		sb.WriteString("*Read-only.*\n\n")
	}

	if len(d.Schema) == 0 {
		return sb.String()
	}

	// Fields keep their declaration order.
	sb.WriteString("**Arguments:**\n")
	for _, f := range d.Schema {
		requiredStr := "optional"
		if f.Required {
			requiredStr = "required"
		}
		sb.WriteString(fmt.Sprintf("- `%s` (%s, %s): ", f.Name, jsonType(f.Type), requiredStr))

		desc := f.Description
		if desc == "" {
			desc = jsonType(f.Type) + " parameter"
		}
		sb.WriteString(desc)
		if len(f.Enum) > 0 {
			sb.WriteString(fmt.Sprintf(" One of: `%s`.", strings.Join(f.Enum, "`, `")))
		}
		if f.Default != nil {
			sb.WriteString(fmt.Sprintf(" Default: `%v`.", f.Default))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
