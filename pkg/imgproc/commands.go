package imgproc

// ArgSpec describes a single argument for a cleanup command, for help
// text and CLI prompts rather than machine-enforced typing. Mirrors the
// teacher's ArgSpec (pkg/stdimg/commands.go).
type ArgSpec struct {
	Name        string
	Type        string
	Required    bool
	Default     string
	Description string
}

// CommandSpec describes a single bead-board photo cleanup verb.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string
	Description string
}

// Commands is the authoritative list of cleanup verbs that Apply
// dispatches; the cmd/pindou REPL does not offer them as commands.
// Narrowed from the teacher's full
// general-purpose Commands list (pkg/stdimg/commands.go) to the subset
// relevant to preparing a bead-board photo.
var Commands = []CommandSpec{
	{
		Name:        "autoOrient",
		Args:        []ArgSpec{{Name: "orientation", Type: "int", Required: true, Description: "EXIF orientation code 1-8"}},
		Usage:       "autoOrient <orientation>",
		Description: "Apply EXIF orientation so the board photo is upright.",
	},
	{
		Name:        "trim",
		Args:        []ArgSpec{{Name: "fuzz", Type: "float", Required: false, Default: "10", Description: "color distance tolerance"}},
		Usage:       "trim [fuzz]",
		Description: "Crop uniform border margin around the board.",
	},
	{
		Name:        "autoLevel",
		Args:        []ArgSpec{},
		Usage:       "autoLevel",
		Description: "Stretch channel extremes to full range.",
	},
	{
		Name:        "levels",
		Args:        []ArgSpec{{Name: "blackPoint", Type: "float", Required: true}, {Name: "gamma", Type: "float", Required: true}, {Name: "whitePoint", Type: "float", Required: true}},
		Usage:       "levels <blackPoint> <gamma> <whitePoint>",
		Description: "Remap channel levels with a gamma curve.",
	},
	{
		Name:        "blur",
		Args:        []ArgSpec{{Name: "sigma", Type: "float", Required: true}},
		Usage:       "blur <sigma>",
		Description: "Separable Gaussian blur.",
	},
	{
		Name:        "sharpen",
		Args:        []ArgSpec{{Name: "sigma", Type: "float", Required: true}, {Name: "amount", Type: "float", Required: true}},
		Usage:       "sharpen <sigma> <amount>",
		Description: "Unsharp-mask sharpen.",
	},
	{
		Name:        "despeckle",
		Args:        []ArgSpec{{Name: "threshold", Type: "float", Required: false, Default: "24"}},
		Usage:       "despeckle [threshold]",
		Description: "3x3 median despeckle.",
	},
	{
		Name:        "threshold",
		Args:        []ArgSpec{{Name: "windowSize", Type: "int", Required: false, Default: "15"}, {Name: "offset", Type: "float", Required: false, Default: "8"}},
		Usage:       "threshold [windowSize] [offset]",
		Description: "Local-mean adaptive threshold preview.",
	},
	{
		Name:        "edge",
		Args:        []ArgSpec{},
		Usage:       "edge",
		Description: "Sobel edge-magnitude preview.",
	},
}

// Apply dispatches to a cleanup verb by name, mirroring the teacher's
// ApplyCommandStdlib (pkg/stdimg/engine.go) dispatch switch, narrowed to
// the Commands list above.
func Apply(b Buffer, name string, args []float64) (Buffer, error) {
	switch name {
	case "autoOrient":
		return b.AutoOrient(int(arg(args, 0, 1))), nil
	case "trim":
		return b.Trim(arg(args, 0, 10)), nil
	case "autoLevel":
		return b.AutoLevel(), nil
	case "levels":
		return b.Levels(arg(args, 0, 0), arg(args, 1, 1), arg(args, 2, 255)), nil
	case "blur":
		return b.GaussianBlur(arg(args, 0, 1)), nil
	case "sharpen":
		return b.UnsharpMask(arg(args, 0, 1), arg(args, 1, 1)), nil
	case "despeckle":
		return b.Despeckle(arg(args, 0, 24)), nil
	case "threshold":
		return b.AdaptiveThreshold(int(arg(args, 0, 15)), int(arg(args, 0, 15)), arg(args, 1, 8)), nil
	case "edge":
		return b.Edge(), nil
	default:
		return Buffer{}, unknownCommandError(name)
	}
}

func arg(args []float64, i int, def float64) float64 {
	if i < len(args) {
		return args[i]
	}
	return def
}
