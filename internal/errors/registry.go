package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Scene Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryScene,
		Message:  "Scene file could not be read",
		Detail:   "The scene file does not exist or is not readable.",
	},
	"E101": {
		Category: CategoryScene,
		Message:  "Scene syntax error",
		Detail:   "The scene file is not valid JSON or TOML.",
	},
	"E102": {
		Category: CategoryScene,
		Message:  "Scene root must be an svg node",
		Detail:   "The outermost node of a scene describes the document and must have tag \"svg\".",
	},
	"E103": {
		Category: CategoryScene,
		Message:  "Scene node has no tag",
		Detail:   "Every node needs a tag, unless it only carries text.",
	},
	"E104": {
		Category: CategoryScene,
		Message:  "Unsupported scene format",
		Detail:   "Scene files must end in .json or .toml.",
	},
	"E105": {
		Category: CategoryScene,
		Message:  "Invalid attribute value",
		Detail:   "Attribute values must be strings, numbers, true or null.",
	},
	"E110": {
		Category: CategoryValidation,
		Message:  "Scene failed validation",
		Detail:   "Elements use unknown tags or attributes, or carry children they do not permit.",
	},

	// ============================================
	// Config Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The svgkit.json or svgkit.toml file could not be parsed.",
	},
	"E201": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or missing.",
	},
	"E202": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No svgkit.json or svgkit.toml was found in the directory or its parents.",
	},

	// ============================================
	// Render and Publish Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryRender,
		Message:  "Output could not be written",
		Detail:   "The rendered document could not be written to the output file.",
	},
	"E301": {
		Category: CategoryPublish,
		Message:  "Publish failed",
		Detail:   "The object store rejected the upload.",
	},
	"E302": {
		Category: CategoryPublish,
		Message:  "No bucket configured",
		Detail:   "Set publish.bucket in the configuration file or pass --bucket.",
	},

	// ============================================
	// Server Errors (E400-E499)
	// ============================================

	"E400": {
		Category: CategoryServer,
		Message:  "Server failed",
		Detail:   "The render server stopped unexpectedly.",
	},
	"E401": {
		Category: CategoryServer,
		Message:  "Rate limit exceeded",
		Detail:   "Too many render requests; retry later.",
	},
	"E402": {
		Category: CategoryServer,
		Message:  "Request body too large",
		Detail:   "The scene exceeds the configured maximum body size.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
