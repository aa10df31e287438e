package workspace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/abhisek/retain/internal/item"
)

// Workspace is a scratch folder holding one challenge solution.
type Workspace struct {
	Dir          string
	SolutionPath string
}

// Create scaffolds a workspace folder under baseDir, named after the
// challenge, with a solution file for the challenge's language.
func Create(baseDir string, c item.Challenge) (*Workspace, error) {
	name := FolderName(c.Title)
	if name == "" {
		name = fmt.Sprintf("challenge_%d", c.ID)
	}

	dir := filepath.Join(baseDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating workspace folder: %w", err)
	}

	file, content, err := solutionFile(c)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("writing solution file: %w", err)
	}

	return &Workspace{Dir: dir, SolutionPath: path}, nil
}

// ReadSolution returns the current contents of the solution file.
func (w *Workspace) ReadSolution() (string, error) {
	b, err := os.ReadFile(w.SolutionPath)
	if err != nil {
		return "", fmt.Errorf("reading solution: %w", err)
	}
	return string(b), nil
}

// Cleanup removes the workspace folder and everything in it.
func (w *Workspace) Cleanup() error {
	return os.RemoveAll(w.Dir)
}

// OpenInEditor opens the solution in $EDITOR (default nvim) and blocks
// until the learner is done. VS Code detaches from the terminal, so for
// "code" the whole folder is opened and we wait for ENTER instead of
// the editor process.
func (w *Workspace) OpenInEditor(in io.Reader, out io.Writer) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "nvim"
	}

	if editor == "code" || strings.HasSuffix(editor, "/code") {
		if err := exec.Command(editor, w.Dir).Run(); err != nil {
			return fmt.Errorf("opening VS Code: %w", err)
		}
		fmt.Fprint(out, "Press ENTER once the challenge is solved...")
		_, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("waiting for editor: %w", err)
		}
		return nil
	}

	cmd := exec.Command(editor, w.SolutionPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", editor, err)
	}
	return nil
}

// CopyToClipboard copies text to the system clipboard. Used for the
// manual-grading fallback when no LLM provider is configured.
func CopyToClipboard(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}

var (
	nonWord    = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// FolderName converts a challenge title into a filesystem-safe folder
// name: punctuation stripped, spaces collapsed to underscores, lowercased.
func FolderName(title string) string {
	name := nonWord.ReplaceAllString(title, "")
	name = whitespace.ReplaceAllString(strings.TrimSpace(name), "_")
	return strings.ToLower(name)
}

// solutionFile returns the scaffold file name and contents for the
// challenge's language.
func solutionFile(c item.Challenge) (string, string, error) {
	switch c.Language {
	case item.LangPython:
		return "solution.py", pythonScaffold(c), nil
	case item.LangJavaScript:
		return "solution.js", javascriptScaffold(c), nil
	case item.LangGo:
		return "solution.go", goScaffold(c), nil
	default:
		return "", "", fmt.Errorf("unsupported language: %q", c.Language)
	}
}

func pythonScaffold(c item.Challenge) string {
	var b strings.Builder
	b.WriteString("\"\"\"\n")
	fmt.Fprintf(&b, "Title: %s\n\n", c.Title)
	fmt.Fprintf(&b, "Description:\n%s\n", c.Description)
	if c.TestCases != "" {
		fmt.Fprintf(&b, "\nTest cases:\n%s\n", c.TestCases)
	}
	b.WriteString("\"\"\"\n\n\n")
	b.WriteString("def solve():\n")
	b.WriteString("    # Write your solution here...\n")
	b.WriteString("    pass\n")
	return b.String()
}

func javascriptScaffold(c item.Challenge) string {
	var b strings.Builder
	b.WriteString("/*\n")
	fmt.Fprintf(&b, "Title: %s\n\n", c.Title)
	fmt.Fprintf(&b, "Description:\n%s\n", c.Description)
	if c.TestCases != "" {
		fmt.Fprintf(&b, "\nTest cases:\n%s\n", c.TestCases)
	}
	b.WriteString("*/\n\n")
	b.WriteString("function solve() {\n")
	b.WriteString("  // Write your solution here...\n")
	b.WriteString("}\n\n")
	b.WriteString("module.exports = { solve };\n")
	return b.String()
}

func goScaffold(c item.Challenge) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Title: %s\n//\n", c.Title)
	b.WriteString("// Description:\n")
	for _, line := range strings.Split(c.Description, "\n") {
		fmt.Fprintf(&b, "// %s\n", line)
	}
	if c.TestCases != "" {
		b.WriteString("//\n// Test cases:\n")
		for _, line := range strings.Split(c.TestCases, "\n") {
			fmt.Fprintf(&b, "// %s\n", line)
		}
	}
	b.WriteString("\npackage main\n\n")
	b.WriteString("func solve() {\n")
	b.WriteString("\t// Write your solution here...\n")
	b.WriteString("}\n\n")
	b.WriteString("func main() {\n\tsolve()\n}\n")
	return b.String()
}
