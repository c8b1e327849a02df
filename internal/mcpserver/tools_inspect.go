package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/tsreqgen/extractor"
	"github.com/erraggy/tsreqgen/normalizer"
)

type inspectInput struct {
	Spec     specInput `json:"spec"                jsonschema:"The OAS document to inspect"`
	LazyRefs bool      `json:"lazy_refs,omitempty" jsonschema:"Keep references lazily resolvable instead of dereferencing the whole tree up front"`
	Offset   int       `json:"offset,omitempty"    jsonschema:"Skip the first N operations (for pagination)"`
	Limit    int       `json:"limit,omitempty"     jsonschema:"Maximum number of operations to return (default TSREQGEN_INSPECT_LIMIT)"`
}

type inspectOperation struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	OperationID string `json:"operation_id,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
}

type inspectOutput struct {
	Title          string             `json:"title"`
	APIVersion     string             `json:"api_version,omitempty"`
	OASVersion     string             `json:"oas_version"`
	SourceFormat   string             `json:"source_format"`
	Converted      bool               `json:"converted,omitempty"`
	OperationCount int                `json:"operation_count"`
	Returned       int                `json:"returned"`
	Operations     []inspectOperation `json:"operations,omitempty"`
	Issues         []generateIssue    `json:"issues,omitempty"`
}

func handleInspect(_ context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	parseResult, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	output := inspectOutput{
		OASVersion:   parseResult.Version,
		SourceFormat: string(parseResult.SourceFormat),
	}

	n := normalizer.New()
	n.LazyRefs = input.LazyRefs
	normResult, err := n.Normalize(parseResult)
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	output.Converted = normResult.Converted

	if info, ok := normResult.Document.Obj("info"); ok {
		output.Title, _ = info.Str("title")
		output.APIVersion, _ = info.Str("version")
	}

	extResult, err := extractor.New().Extract(normResult.Document)
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	output.OperationCount = len(extResult.Operations)
	ops := makeSlice[inspectOperation](len(extResult.Operations))
	for _, op := range extResult.Operations {
		ops = append(ops, inspectOperation{
			Method:      strings.ToUpper(op.Method),
			Path:        op.URL,
			OperationID: op.OperationID,
			Summary:     op.Summary,
			Deprecated:  op.Deprecated,
		})
	}
	output.Operations = paginate(ops, input.Offset, input.Limit)
	output.Returned = len(output.Operations)

	issueCount := len(normResult.Issues) + len(extResult.Issues)
	output.Issues = makeSlice[generateIssue](issueCount)
	for _, set := range [][]normalizer.Issue{normResult.Issues, extResult.Issues} {
		for _, issue := range set {
			output.Issues = append(output.Issues, generateIssue{
				Severity: issue.Severity.String(),
				Path:     issue.Path,
				Message:  issue.Message,
			})
		}
	}

	return nil, output, nil
}
