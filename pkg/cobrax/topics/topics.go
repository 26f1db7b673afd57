// Package topics adds help topics to a cobra application: free-form help
// pages, read from a file system, that `help <topic>` shows alongside the
// command help.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// OptionPrefix marks a topic documenting a flag: option-color is shown for
// `help color` and listed as --color
const OptionPrefix = "option-"

// Manager holds the help topics of an application
type Manager struct {
	fsys         fs.FS
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	extensions   []string
	renderer     Renderer
}

// Topic is one help page
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Options configures a Manager
type Options struct {
	// Extensions are the file extensions read as topics. Defaults to .txt
	// and .md.
	Extensions []string

	// Renderer formats topics. Defaults to PlainRenderer.
	Renderer Renderer
}

// New creates a Manager reading topics from fsys
func New(fsys fs.FS, opts Options) *Manager {
	m := &Manager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".txt", ".md"}
	}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}
	return m
}

// Load reads every topic file in the file system
func (m *Manager) Load() error {
	return fs.WalkDir(m.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !slices.Contains(m.extensions, ext) {
			return nil
		}

		content, err := fs.ReadFile(m.fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{
			Name:    name,
			Path:    p,
			Content: string(content),
		}
		return nil
	})
}

// Get finds a topic by name, also trying it as an option topic
func (m *Manager) Get(name string) (*Topic, bool) {
	if topic, ok := m.topics[name]; ok {
		return topic, true
	}
	topic, ok := m.topics[OptionPrefix+name]
	return topic, ok
}

// Names returns all topic names, sorted
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns a topic formatted by the renderer
func (m *Manager) Render(name string) (string, bool) {
	topic, ok := m.Get(name)
	if !ok {
		return "", false
	}
	return m.renderer.Render(topic.Content, path.Ext(topic.Path)), true
}

// WriteIndex lists the topics, general ones first, then options
func (m *Manager) WriteIndex(w io.Writer, program string) {
	names := m.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, options []string
	for _, name := range names {
		if option, ok := strings.CutPrefix(name, OptionPrefix); ok {
			options = append(options, option)
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
}

// Install loads the topics and replaces root's help command with one that
// also knows about them
func Install(root *cobra.Command, fsys fs.FS, opts Options) (*Manager, error) {
	m := New(fsys, opts)
	if err := m.Load(); err != nil {
		return nil, fmt.Errorf("failed to load help topics: %w", err)
	}
	m.originalHelp = root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			switch {
			case len(args) == 0:
				m.originalHelp(root, args)
			case args[0] == "topics":
				m.WriteIndex(cmd.OutOrStdout(), root.Name())
			default:
				if rendered, ok := m.Render(args[0]); ok {
					fmt.Fprint(cmd.OutOrStdout(), rendered)
					return
				}
				target, _, err := root.Find(args)
				if err != nil || target == nil {
					target = root
				}
				m.originalHelp(target, args)
			}
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.AddCommand(helpCmd)
	root.SetHelpCommand(helpCmd)

	return m, nil
}
