package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Construction (L001-L009)

	"L001": {
		Category:   CategoryConstruction,
		Message:    "Duplicate store member",
		Detail:     "A feature proposed a member name that an earlier feature already registered. State, properties and methods share one namespace.",
		Suggestion: "Rename one of the members or drop the feature that repeats it.",
	},
	"L002": {
		Category:   CategoryConstruction,
		Message:    "Linked state must produce a record",
		Detail:     "The linked-state factory returned a value that is not a record, so it cannot be split into members.",
		Suggestion: "Return record.Of(...) from the factory, with one key per member.",
	},

	// Runtime (L003-L009)

	"L003": {
		Category:   CategoryRuntime,
		Message:    "State written during a computation",
		Detail:     "A derived or linked computation wrote to a cell. Computations must only read.",
		Suggestion: "Move the write into a method or event handler.",
	},
	"L004": {
		Category: CategoryRuntime,
		Message:  "Unknown store member",
		Detail:   "The name is not registered in the store or view.",
	},
	"L005": {
		Category:   CategoryRuntime,
		Message:    "Dependency cycle",
		Detail:     "A computation read its own value, directly or through other nodes.",
		Suggestion: "Break the cycle by reading the value with Peek or restructuring the dependencies.",
	},
	"L006": {
		Category:   CategoryRuntime,
		Message:    "Store member is not writable",
		Detail:     "Only state members can be written. Properties are computed and methods are called.",
		Suggestion: "Write the state the property is computed from.",
	},
	"L007": {
		Category:   CategoryRuntime,
		Message:    "Wrong store member kind",
		Detail:     "Methods are called, never read as values; state and properties are read, never called.",
		Suggestion: "Use Call for methods and Get or Value for state and properties.",
	},

	// Configuration (L010)

	"L010": {
		Category: CategoryConfig,
		Message:  "Invalid linkstore.toml",
		Detail:   "The configuration file is malformed or holds an invalid value.",
	},

	// Input and CLI (L011-L019)

	"L011": {
		Category:   CategoryInput,
		Message:    "Invalid state file",
		Detail:     "The state file could not be decoded, or its top level is not a table.",
		Suggestion: "State files must be a JSON object or a TOML document.",
	},
	"L012": {
		Category:   CategoryInput,
		Message:    "Unsupported state file format",
		Detail:     "The file extension does not name a supported format.",
		Suggestion: "Use a .json or .toml file, or pass --format.",
	},
	"L013": {
		Category: CategoryCLI,
		Message:  "File watch failed",
		Detail:   "The file watcher could not be started or reported an error.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
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
