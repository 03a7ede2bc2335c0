package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aide-sh/aide/internal/profile"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the user profile",
		Long: `Show the stored user profile. The profile personalizes greetings
and response tone.

Interaction styles: professional, friendly, technical, creative.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAssistant(cmd)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			p := a.Profile.Get()

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(p)
			}
			fmt.Printf("Name:       %s\n", p.Name)
			if p.Profession != "" {
				fmt.Printf("Profession: %s\n", p.Profession)
			}
			if p.Interests != "" {
				fmt.Printf("Interests:  %s\n", p.Interests)
			}
			if p.InteractionStyle != "" {
				fmt.Printf("Style:      %s\n", p.InteractionStyle)
			}
			return nil
		},
	}
	cmd.AddCommand(newProfileSetCmd())
	return cmd
}

func newProfileSetCmd() *cobra.Command {
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Long: `Update one or more profile fields.

Example:
  aide profile set --name Ada --profession engineer --style technical`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAssistant(cmd)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			p := a.Profile.Get()
			apply := func(flag string, dst *string) {
				if v, _ := cmd.Flags().GetString(flag); v != "" {
					*dst = v
				}
			}
			apply("name", &p.Name)
			apply("profession", &p.Profession)
			apply("interests", &p.Interests)
			apply("style", &p.InteractionStyle)

			switch p.InteractionStyle {
			case "", profile.StyleProfessional, profile.StyleFriendly, profile.StyleTechnical, profile.StyleCreative:
			default:
				return fmt.Errorf("unknown style %q", p.InteractionStyle)
			}

			if err := a.Profile.Update(p); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "Profile updated.")
			return nil
		},
	}
	setCmd.Flags().String("name", "", "User name")
	setCmd.Flags().String("profession", "", "Profession")
	setCmd.Flags().String("interests", "", "Interests")
	setCmd.Flags().String("style", "", "Interaction style")
	return setCmd
}
