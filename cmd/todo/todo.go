package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"todo-board/model"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the visible todos",
	Args:    cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
		return nil
	}),
}

var addCmd = &cobra.Command{
	Use:   "add TITLE [DESCRIPTION]",
	Short: "Add a todo",
	Args:  cobra.RangeArgs(1, 2),
	RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
		description := ""
		if len(args) == 2 {
			description = args[1]
		}
		s.ctrl.OpenAddDialog()
		s.ctrl.Add(s.ctx, args[0], description)
		return nil
	}),
}

var toggleCmd = &cobra.Command{
	Use:   "toggle ID",
	Short: "Toggle completion",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
		s.ctrl.Toggle(s.ctx, args[0])
		return nil
	}),
}

var priorityCmd = &cobra.Command{
	Use:   "priority ID",
	Short: "Flip between important and normal priority",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
		s.ctrl.ChangePriority(s.ctx, args[0])
		return nil
	}),
}

var colorCmd = &cobra.Command{
	Use:   "color ID COLOR",
	Short: "Change the background colour (hex or palette name)",
	Args:  cobra.ExactArgs(2),
	RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
		color, err := resolveColor(args[1])
		if err != nil {
			return err
		}
		s.ctrl.ChangeColor(s.ctx, args[0], color)
		return nil
	}),
}

var categoryCmd = &cobra.Command{
	Use:   "category ID CATEGORY",
	Short: "Move a todo to another category",
	Args:  cobra.ExactArgs(2),
	RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
		category, err := model.ParseCategory(args[1])
		if err != nil {
			return err
		}
		s.ctrl.ChangeCategory(s.ctx, args[0], category)
		return nil
	}),
}

var editCmd = &cobra.Command{
	Use:   "edit ID TITLE DESCRIPTION",
	Short: "Replace title and description",
	Args:  cobra.ExactArgs(3),
	RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
		s.ctrl.Edit(s.ctx, args[0], args[1], args[2])
		return nil
	}),
}

var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a todo",
	Args:    cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
		s.ctrl.Delete(s.ctx, args[0])
		return nil
	}),
}

var moveCmd = &cobra.Command{
	Use:   "move FROM TO",
	Short: "Move the todo at visible position FROM to position TO",
	Long: `Move reorders the local list only; the server keeps its creation order.
Positions are zero-based indices into the list shown with the same --filter
and --category flags. The next command reloads the server order.`,
	Args: cobra.ExactArgs(2),
	RunE: withSession(func(cmd *cobra.Command, s *session, args []string) error {
		from, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid FROM position %q", args[0])
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid TO position %q", args[1])
		}
		s.ctrl.Reorder(from, to)
		return nil
	}),
}

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or change the colour theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"dark", "light", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if len(args) == 1 {
			switch strings.ToLower(args[0]) {
			case "dark":
				s.ctrl.SetDark(true)
			case "light":
				s.ctrl.SetDark(false)
			case "toggle":
				s.ctrl.ToggleTheme()
			default:
				return fmt.Errorf("unknown theme %q", args[0])
			}
		}

		if s.ctrl.Dark() {
			fmt.Fprintln(cmd.OutOrStdout(), "dark")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "light")
		}
		return nil
	},
}

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List the memo palette",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(cmd.OutOrStdout(), renderPalette(model.MemoColors))
		return nil
	},
}

var tokenTTL string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token signed with the configured secret",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Client.AuthSecret == "" {
			return fmt.Errorf("no auth secret configured (set client.auth-secret or TODO_AUTH_SECRET)")
		}

		ttl, err := parseTTL(tokenTTL)
		if err != nil {
			return err
		}
		token, err := cfg.Client.Token(ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenTTL, "ttl", "720h", "token lifetime, 0 for no expiry")

	rootCmd.AddCommand(listCmd, addCmd, toggleCmd, priorityCmd, colorCmd, categoryCmd,
		editCmd, deleteCmd, moveCmd, themeCmd, colorsCmd, tokenCmd)
}

// withSession 打开会话、执行 fn 并输出结果视图
func withSession(fn func(cmd *cobra.Command, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := fn(cmd, s, args); err != nil {
			return err
		}
		return s.printVisible(cmd)
	}
}

func resolveColor(in string) (string, error) {
	if model.ValidColor(in) {
		return strings.ToUpper(in), nil
	}
	for _, c := range model.MemoColors {
		if strings.EqualFold(c.Name, in) || strings.EqualFold(strings.ReplaceAll(c.Name, " ", "-"), in) {
			return c.Value, nil
		}
	}
	return "", fmt.Errorf("unknown colour %q (use #RRGGBB or a name from 'todo colors')", in)
}

func writeJSON(w io.Writer, todos []model.Todo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(todos)
}

func parseTTL(in string) (time.Duration, error) {
	if in == "" || in == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(in)
	if err != nil {
		return 0, fmt.Errorf("invalid --ttl %q: %w", in, err)
	}
	return d, nil
}
