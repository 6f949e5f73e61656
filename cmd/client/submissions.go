package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	pub "gitlab.com/dirk.krummacker/contact-console/pkg/model"
)

// submissionResult is the response of status changes.
type submissionResult struct {
	Message    string         `json:"message"`
	Submission pub.Submission `json:"submission"`
}

var listStatus string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List contact submissions in the order they were received",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/submissions"
		if listStatus != "" {
			path += "?status=" + url.QueryEscape(listStatus)
		}
		var submissions []pub.Submission
		if err := newClient().do(http.MethodGet, path, nil, &submissions); err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tRECEIVED\tFROM\tSUBJECT")
		for _, s := range submissions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Id, s.Status, s.SubmittedAt.Format(time.DateTime), s.FullName, s.Subject)
		}
		return w.Flush()
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a submission without changing its status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var submission pub.Submission
		if err := newClient().do(http.MethodGet, "/submissions/"+url.PathEscape(args[0]), nil, &submission); err != nil {
			return err
		}
		printSubmission(submission)
		return nil
	},
}

var submitRequest pub.SubmitRequest

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Send a contact form entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var submission pub.Submission
		if err := newClient().do(http.MethodPost, "/submissions", submitRequest, &submission); err != nil {
			return err
		}
		fmt.Println("created submission", submission.Id)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:       "status <id> <new|read|replied>",
	Short:     "Set the status of a submission",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"new", "read", "replied"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeStatus(http.MethodPut, "/submissions/"+url.PathEscape(args[0])+"/status", pub.StatusRequest{Status: args[1]})
	},
}

var replyCmd = &cobra.Command{
	Use:   "reply <id>",
	Short: "Mark a submission as replied",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeStatus(http.MethodPost, "/submissions/"+url.PathEscape(args[0])+"/reply", nil)
	},
}

var readCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a submission as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeStatus(http.MethodPost, "/submissions/"+url.PathEscape(args[0])+"/read", nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count the submissions per status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var stats pub.Stats
		if err := newClient().do(http.MethodGet, "/stats", nil, &stats); err != nil {
			return err
		}
		fmt.Printf("total %d, new %d, read %d, replied %d\n", stats.Total, stats.New, stats.Read, stats.Replied)
		return nil
	},
}

var viewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Open a submission in the detail view; new submissions become read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return selection(http.MethodPut, "/selection/"+url.PathEscape(args[0]))
	},
}

var dismissCmd = &cobra.Command{
	Use:   "dismiss",
	Short: "Close the detail view",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return selection(http.MethodDelete, "/selection")
	},
}

var selectionCmd = &cobra.Command{
	Use:   "selection",
	Short: "Show the submission in the detail view",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return selection(http.MethodGet, "/selection")
	},
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "only list submissions with this status")

	submitCmd.Flags().StringVar(&submitRequest.FullName, "name", "", "full name")
	submitCmd.Flags().StringVar(&submitRequest.Email, "email", "", "email address")
	submitCmd.Flags().StringVar(&submitRequest.Organization, "organization", "", "organization (optional)")
	submitCmd.Flags().StringVar(&submitRequest.Subject, "subject", "", "subject")
	submitCmd.Flags().StringVar(&submitRequest.Message, "message", "", "message")
	for _, name := range []string{"name", "email", "subject", "message"} {
		_ = submitCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(listCmd, getCmd, submitCmd, statusCmd, replyCmd, readCmd, statsCmd,
		viewCmd, dismissCmd, selectionCmd)
}

func changeStatus(method, path string, body any) error {
	var result submissionResult
	if err := newClient().do(method, path, body, &result); err != nil {
		return err
	}
	fmt.Println(result.Message)
	printSubmission(result.Submission)
	return nil
}

func selection(method, path string) error {
	var result pub.SelectionResponse
	if err := newClient().do(method, path, nil, &result); err != nil {
		return err
	}
	if result.Submission == nil {
		fmt.Println(result.State)
		return nil
	}
	printSubmission(*result.Submission)
	return nil
}

func printSubmission(s pub.Submission) {
	fmt.Printf("ID:           %s\n", s.Id)
	fmt.Printf("Status:       %s\n", s.Status)
	fmt.Printf("Received:     %s\n", s.SubmittedAt.Format(time.DateTime))
	fmt.Printf("From:         %s <%s>\n", s.FullName, s.Email)
	if s.Organization != "" {
		fmt.Printf("Organization: %s\n", s.Organization)
	}
	fmt.Printf("Subject:      %s\n\n%s\n", s.Subject, s.Message)
}
