package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/tsreqgen/generator"
)

type generateInput struct {
	Spec            specInput `json:"spec"                        jsonschema:"The OAS document to generate from"`
	OutputDir       string    `json:"output_dir,omitempty"        jsonschema:"Directory to write generated files to; omit to return the module source inline"`
	BaseRequestType string    `json:"base_request_type,omitempty" jsonschema:"Name of the request-options interface in the generated module (default RequestOptions, configurable via TSREQGEN_BASE_REQUEST_TYPE)"`
	StrictMode      *bool     `json:"strict_mode,omitempty"       jsonschema:"Fail generation on any issue, even warnings"`
	StrictRefs      bool      `json:"strict_refs,omitempty"       jsonschema:"Treat unresolvable references as errors instead of dropping the parameter"`
	IncludeInfo     *bool     `json:"include_info,omitempty"      jsonschema:"Include informational issues in the result"`
}

type generatedFileInfo struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type generateIssue struct {
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

type generateOutput struct {
	Success             bool                `json:"success"`
	SourceVersion       string              `json:"source_version"`
	OASVersion          string              `json:"oas_version"`
	Converted           bool                `json:"converted,omitempty"`
	GeneratedOperations int                 `json:"generated_operations"`
	OutputDir           string              `json:"output_dir,omitempty"`
	Files               []generatedFileInfo `json:"files,omitempty"`
	Module              string              `json:"module,omitempty"`
	InfoCount           int                 `json:"info_count"`
	WarningCount        int                 `json:"warning_count"`
	ErrorCount          int                 `json:"error_count"`
	Issues              []generateIssue     `json:"issues,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	// Apply config defaults when input fields are omitted (nil).
	baseType := cfg.BaseRequestType
	if input.BaseRequestType != "" {
		baseType = input.BaseRequestType
	}
	strictMode := cfg.StrictMode
	if input.StrictMode != nil {
		strictMode = *input.StrictMode
	}
	includeInfo := cfg.IncludeInfo
	if input.IncludeInfo != nil {
		includeInfo = *input.IncludeInfo
	}

	parseResult, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	result, err := generator.GenerateWithOptions(
		generator.WithParsed(*parseResult),
		generator.WithBaseRequestType(baseType),
		generator.WithStrictMode(strictMode),
		generator.WithStrictRefs(input.StrictRefs),
		generator.WithIncludeInfo(includeInfo),
	)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Success:             result.Success,
		SourceVersion:       result.SourceVersion,
		OASVersion:          result.SourceOASVersion.String(),
		Converted:           result.Converted,
		GeneratedOperations: result.GeneratedOperations,
		InfoCount:           result.InfoCount,
		WarningCount:        result.WarningCount,
		ErrorCount:          result.ErrorCount,
	}

	output.Issues = makeSlice[generateIssue](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, generateIssue{
			Severity: issue.Severity.String(),
			Path:     issue.Path,
			Message:  issue.Message,
		})
	}

	if input.OutputDir == "" {
		// Inline mode: return the module source directly.
		if f := result.GetFile("client.ts"); f != nil {
			output.Module = string(f.Content)
		}
		return nil, output, nil
	}

	if err := result.WriteFiles(input.OutputDir); err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output.OutputDir = input.OutputDir
	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		output.Files = append(output.Files, generatedFileInfo{
			Name: f.Name,
			Size: len(f.Content),
		})
	}

	return nil, output, nil
}
