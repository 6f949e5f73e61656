package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	pub "gitlab.com/dirk.krummacker/contact-console/pkg/model"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show and edit the organization's contact information",
}

var infoShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the published contact information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return contactInfo(http.MethodGet, "/contact-info", nil)
	},
}

var infoEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Start editing; the draft starts as a copy of the published information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return contactInfo(http.MethodPost, "/contact-info/edit", nil)
	},
}

var infoDraftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Show the draft",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return contactInfo(http.MethodGet, "/contact-info/draft", nil)
	},
}

var infoDraftFields pub.ContactInfo

var infoSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change fields of the draft, starting an edit if necessary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		var current pub.ContactInfoResponse
		if err := client.do(http.MethodPost, "/contact-info/edit", nil, &current); err != nil {
			return err
		}
		draft := current.ContactInfo
		flags := cmd.Flags()
		for name, target := range map[string]*string{
			"address":  &draft.Address,
			"phone":    &draft.Phone,
			"email":    &draft.Email,
			"hours":    &draft.BusinessHours,
			"website":  &draft.Website,
			"facebook": &draft.SocialMedia.Facebook,
			"linkedin": &draft.SocialMedia.LinkedIn,
			"twitter":  &draft.SocialMedia.Twitter,
		} {
			if flags.Changed(name) {
				*target, _ = flags.GetString(name)
			}
		}
		return contactInfo(http.MethodPut, "/contact-info/draft", draft)
	},
}

var infoCommitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Publish the draft",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return contactInfo(http.MethodPost, "/contact-info/commit", nil)
	},
}

var infoCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the draft",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return contactInfo(http.MethodPost, "/contact-info/cancel", nil)
	},
}

func init() {
	flags := infoSetCmd.Flags()
	flags.StringVar(&infoDraftFields.Address, "address", "", "postal address")
	flags.StringVar(&infoDraftFields.Phone, "phone", "", "phone number")
	flags.StringVar(&infoDraftFields.Email, "email", "", "email address")
	flags.StringVar(&infoDraftFields.BusinessHours, "hours", "", "business hours, one line per day range")
	flags.StringVar(&infoDraftFields.Website, "website", "", "website URL")
	flags.StringVar(&infoDraftFields.SocialMedia.Facebook, "facebook", "", "Facebook page URL")
	flags.StringVar(&infoDraftFields.SocialMedia.LinkedIn, "linkedin", "", "LinkedIn page URL")
	flags.StringVar(&infoDraftFields.SocialMedia.Twitter, "twitter", "", "Twitter page URL")

	infoCmd.AddCommand(infoShowCmd, infoEditCmd, infoDraftCmd, infoSetCmd, infoCommitCmd, infoCancelCmd)
	rootCmd.AddCommand(infoCmd)
}

func contactInfo(method, path string, body any) error {
	var result pub.ContactInfoResponse
	if err := newClient().do(method, path, body, &result); err != nil {
		return err
	}
	if result.Message != "" {
		fmt.Println(result.Message)
	}
	info := result.ContactInfo
	fmt.Printf("Editing:  %t\n", result.Editing)
	fmt.Printf("Address:  %s\n", info.Address)
	fmt.Printf("Phone:    %s\n", info.Phone)
	fmt.Printf("Email:    %s\n", info.Email)
	fmt.Printf("Hours:    %s\n", info.BusinessHours)
	fmt.Printf("Website:  %s\n", info.Website)
	fmt.Printf("Facebook: %s\n", info.SocialMedia.Facebook)
	fmt.Printf("LinkedIn: %s\n", info.SocialMedia.LinkedIn)
	fmt.Printf("Twitter:  %s\n", info.SocialMedia.Twitter)
	return nil
}
