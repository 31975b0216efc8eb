package ignore

// DefaultExtensions is the fixed binary/media/archive/font/db extension set
// rejected by layer 1 (extension exclusion), lowercase, including the dot.
// Extended at runtime by Options.FileTypeExclusions.
var DefaultExtensions = []string{
	// Images
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".webp", ".tiff",
	// Audio / video
	".mp3", ".mp4", ".mov", ".avi", ".mkv", ".wav", ".flac",
	// Archives
	".zip", ".tar", ".gz", ".tgz", ".7z", ".rar", ".bz2", ".xz",
	// Fonts
	".woff", ".woff2", ".ttf", ".otf", ".eot",
	// Databases
	".db", ".sqlite", ".sqlite3",
	// Compiled / binary artifacts
	".exe", ".dll", ".so", ".dylib", ".bin", ".class", ".pyc", ".pyo", ".o", ".obj",
	// Documents
	".pdf",
}

// DefaultPatterns is the built-in glob pattern set for layer 2 (global
// pattern exclusion): dependency directories, build outputs, VCS metadata,
// lockfiles, env files, IDE directories, test directories, docs, and
// configuration dotfiles. Extended at runtime by Options.FileExclusions.
//
// Directory patterns use an explicit "**/" prefix so they exclude at any
// depth; see DESIGN.md's Open Question entry on why this is spelled out
// rather than left implicit in a bare "name/" pattern.
var DefaultPatterns = []string{
	// VCS metadata
	"**/.git/",
	"**/.hg/",
	"**/.svn/",

	// Dependency directories
	"**/node_modules/",
	"**/vendor/",
	"**/.venv/",
	"**/venv/",
	"**/__pycache__/",

	// Build outputs
	"**/dist/",
	"**/build/",
	"**/out/",
	"**/target/",
	"**/.next/",
	"**/coverage/",

	// IDE / editor directories
	"**/.idea/",
	"**/.vscode/",

	// Test directories
	"**/testdata/",
	"**/__snapshots__/",

	// Docs (rendered output, not source docs the caller wrote by hand)
	"**/CHANGELOG.md",

	// Lockfiles
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"Gemfile.lock",
	"Cargo.lock",
	"go.sum",
	"poetry.lock",

	// Env files
	".env",
	".env.*",

	// Configuration dotfiles carrying credentials or local machine state
	"*.pem",
	"*.key",
	"*.p12",
	"*.pfx",
	".DS_Store",
	"Thumbs.db",
}

// RootIgnoreDefaultLines are the minimum lines the resolver writes into the
// root ignore file when it does not already exist (layer 4, root override).
var RootIgnoreDefaultLines = []string{
	"todo",
	"prompt.md",
}
