package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mwielgus/postgraph/pkg/pipeline"
	"github.com/mwielgus/postgraph/pkg/post"
	"github.com/mwielgus/postgraph/pkg/timeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command for interactive post listing.
func (c *CLI) browseCommand() *cobra.Command {
	var configFile string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "browse [dir]",
		Short: "Browse posts interactively in the terminal",
		Long: `Browse posts interactively in the terminal.

Posts are listed newest first with their lane assignment. Selecting a
post prints its metadata.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				opts.Source = args[0]
			}
			applyConfig(&opts, cfg)

			posts, err := post.LoadDir(opts.Source)
			if err != nil {
				return err
			}
			if len(posts) == 0 {
				printInfo("No posts in %s", opts.Source)
				return nil
			}

			model := newPostListModel(posts)
			final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}

			if m, ok := final.(postListModel); ok && m.Selected != nil {
				printPost(*m.Selected)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file (default ~/.config/postgraph/config.toml)")

	return cmd
}

// postListModel is the bubbletea model for interactive post selection.
type postListModel struct {
	Posts    []post.Post
	Cursor   int
	Offset   int
	Height   int
	Selected *post.Post
}

func newPostListModel(posts []post.Post) postListModel {
	return postListModel{
		Posts:  posts,
		Height: 15,
	}
}

func (m postListModel) Init() tea.Cmd {
	return nil
}

func (m postListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Posts)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.Posts[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m postListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Posts"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Posts) {
		end = len(m.Posts)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Posts[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		lane := timeline.MainBranchID
		if tag := laneTag(p); tag != "" {
			lane = tag
		}

		status := ""
		if p.Draft {
			status = "draft"
		}

		rows = append(rows, []string{
			cursor,
			p.Date.Format("2006-01-02"),
			p.Title,
			lane,
			status,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Date", "Title", "Lane", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Posts) {
				return lipgloss.NewStyle()
			}
			p := m.Posts[actualIdx]

			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if p.Draft {
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Posts))))

	return b.String()
}

// laneTag returns the slug of a post's primary tag, or "" for main.
func laneTag(p post.Post) string {
	for _, tag := range p.Tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			return timeline.Slugify(tag)
		}
	}
	return ""
}

// printPost prints a selected post's metadata.
func printPost(p post.Post) {
	printSuccess("%s", p.Title)
	printDetail("slug:  %s", p.Slug)
	printDetail("date:  %s", p.Date.Format("Jan 2, 2006"))
	if len(p.Tags) > 0 {
		printDetail("tags:  %s", strings.Join(p.Tags, ", "))
	}
	if p.Summary != "" {
		printDetail("summary: %s", p.Summary)
	}
	if p.Draft {
		printDetail("status: draft")
	}
	printDetail("file:  %s", p.Path)
}
