package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"github.com/xifanyan/helpspot"
)

var ticketCmd = &cobra.Command{
	Use:     "ticket",
	Aliases: []string{"tickets", "request"},
	Short:   "Work with support requests",
}

var (
	ticketRaw       bool
	ticketAccessKey string

	createNote      string
	createTitle     string
	createEmail     string
	createFirstName string
	createLastName  string
	createUserID    string
	createPhone     string
	createCategory  int
	createUrgent    bool
	createCustoms   []string
	createFiles     []string
	createCopyKey   bool

	updateNote     string
	updateTitle    string
	updateCategory int
	updateAssignee int
	updateStatus   int
	updateOpen     bool
	updateUrgent   bool

	searchQuery    string
	searchEmail    string
	searchStatus   int
	searchCategory int
	searchOpenOnly bool
	searchLimit    int
)

func init() {
	ticketGetCmd.Flags().BoolVar(&ticketRaw, "raw", false, "show raw field values (IDs instead of names)")
	ticketGetCmd.Flags().StringVar(&ticketAccessKey, "access-key", "", "look up by public access key instead of ID")

	ticketCreateCmd.Flags().StringVarP(&createNote, "note", "n", "", "ticket description/note (required)")
	ticketCreateCmd.Flags().StringVarP(&createEmail, "email", "e", "", "customer email")
	ticketCreateCmd.Flags().StringVarP(&createFirstName, "first-name", "f", "", "customer first name")
	ticketCreateCmd.Flags().StringVarP(&createLastName, "last-name", "l", "", "customer last name")
	ticketCreateCmd.Flags().StringVar(&createUserID, "user-id", "", "customer ID")
	ticketCreateCmd.Flags().StringVar(&createPhone, "phone", "", "customer phone number")
	ticketCreateCmd.Flags().StringVarP(&createTitle, "title", "t", "", "ticket title/subject")
	ticketCreateCmd.Flags().IntVarP(&createCategory, "category", "c", 0, "category ID")
	ticketCreateCmd.Flags().BoolVar(&createUrgent, "urgent", false, "mark as urgent")
	ticketCreateCmd.Flags().StringArrayVar(&createCustoms, "custom", nil, "custom field value as id=value (repeatable)")
	ticketCreateCmd.Flags().StringArrayVar(&createFiles, "file", nil, "file to attach (repeatable)")
	ticketCreateCmd.Flags().BoolVar(&createCopyKey, "copy", false, "copy the access key to the clipboard")
	ticketCreateCmd.MarkFlagRequired("note")

	ticketUpdateCmd.Flags().StringVarP(&updateNote, "note", "n", "", "note to add (required)")
	ticketUpdateCmd.Flags().StringVar(&ticketAccessKey, "access-key", "", "update by public access key instead of ID")
	ticketUpdateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "new title")
	ticketUpdateCmd.Flags().IntVarP(&updateCategory, "category", "c", 0, "new category ID")
	ticketUpdateCmd.Flags().IntVar(&updateAssignee, "assign-to", 0, "staff ID to assign to")
	ticketUpdateCmd.Flags().IntVar(&updateStatus, "status", 0, "new status ID")
	ticketUpdateCmd.Flags().BoolVar(&updateOpen, "open", true, "open or close the request")
	ticketUpdateCmd.Flags().BoolVar(&updateUrgent, "urgent", false, "set or clear the urgent flag")
	ticketUpdateCmd.MarkFlagRequired("note")

	ticketSearchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "full text search query")
	ticketSearchCmd.Flags().StringVarP(&searchEmail, "email", "e", "", "filter by customer email")
	ticketSearchCmd.Flags().IntVarP(&searchStatus, "status", "s", 0, "filter by status ID")
	ticketSearchCmd.Flags().IntVarP(&searchCategory, "category", "c", 0, "filter by category ID")
	ticketSearchCmd.Flags().BoolVar(&searchOpenOnly, "open-only", false, "show only open tickets")
	ticketSearchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 25, "number of results")

	ticketCmd.AddCommand(ticketGetCmd, ticketCreateCmd, ticketUpdateCmd, ticketSearchCmd)
}

var ticketGetCmd = &cobra.Command{
	Use:   "get [ticket id]",
	Short: "Show one ticket by ID or access key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := helpspot.GetRequestOptions{AccessKey: ticketAccessKey, RawValues: ticketRaw}
		if len(args) == 1 {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid ticket id %q", args[0])
			}
			opts.ID = id
		}

		req, err := client.GetRequest(ctx, opts)
		if err != nil {
			return err
		}

		fmt.Print(renderRequest(req))
		return nil
	},
}

var ticketCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new ticket",
	RunE: func(cmd *cobra.Command, args []string) error {
		customs, err := parseCustomFields(createCustoms)
		if err != nil {
			return err
		}

		files, err := loadFiles(createFiles)
		if err != nil {
			return err
		}

		nr := helpspot.NewRequest{
			Note:         createNote,
			Title:        createTitle,
			CategoryID:   createCategory,
			Email:        createEmail,
			FirstName:    createFirstName,
			LastName:     createLastName,
			UserID:       createUserID,
			Phone:        createPhone,
			Urgent:       createUrgent,
			CustomFields: customs,
			Files:        files,
		}

		var req helpspot.Request
		if err := spinner.New().Title("Creating ticket...").ActionWithErr(func(ctx context.Context) error {
			var err error
			req, err = client.CreateRequest(ctx, nr)
			return err
		}).Run(); err != nil {
			return err
		}

		fmt.Printf("Created ticket #%d\n", req.ID)
		if req.AccessKey != "" {
			fmt.Println(kv("Access key", req.AccessKey))
			if createCopyKey {
				if err := clipboard.WriteAll(req.AccessKey); err != nil {
					return fmt.Errorf("copying access key to clipboard: %w", err)
				}
				fmt.Println("Access key copied to clipboard")
			}
		}
		return nil
	},
}

var ticketUpdateCmd = &cobra.Command{
	Use:   "update [ticket id]",
	Short: "Add a note to a ticket and optionally change its fields",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		upd := helpspot.RequestUpdate{Note: updateNote, AccessKey: ticketAccessKey, Title: updateTitle}
		if len(args) == 1 {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid ticket id %q", args[0])
			}
			upd.ID = id
		}

		// only flags the user actually set are sent; the server treats
		// absence as "leave unchanged"
		if cmd.Flags().Changed("category") {
			upd.CategoryID = &updateCategory
		}
		if cmd.Flags().Changed("assign-to") {
			upd.AssignedTo = &updateAssignee
		}
		if cmd.Flags().Changed("status") {
			upd.StatusID = &updateStatus
		}
		if cmd.Flags().Changed("open") {
			upd.Open = &updateOpen
		}
		if cmd.Flags().Changed("urgent") {
			upd.Urgent = &updateUrgent
		}

		req, err := client.UpdateRequest(ctx, upd)
		if err != nil {
			return err
		}

		fmt.Printf("Updated ticket #%d\n", req.ID)
		return nil
	},
}

var ticketSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search tickets (requires credentials)",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := helpspot.SearchOptions{
			Query:      searchQuery,
			Email:      searchEmail,
			StatusID:   searchStatus,
			CategoryID: searchCategory,
			Length:     searchLimit,
		}
		if searchOpenOnly {
			open := true
			opts.Open = &open
		}

		var reqs []helpspot.Request
		if err := spinner.New().Title("Searching...").ActionWithErr(func(ctx context.Context) error {
			var err error
			reqs, err = client.SearchRequests(ctx, opts)
			return err
		}).Run(); err != nil {
			return err
		}

		if len(reqs) == 0 {
			fmt.Println("No tickets found")
			return nil
		}

		for _, r := range reqs {
			fmt.Println(renderRequestLine(r))
		}
		return nil
	},
}

func parseCustomFields(raw []string) (map[int]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	customs := make(map[int]string, len(raw))
	for _, entry := range raw {
		id, value, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid custom field %q, expected id=value", entry)
		}
		n, err := strconv.Atoi(id)
		if err != nil {
			return nil, fmt.Errorf("invalid custom field id %q", id)
		}
		customs[n] = value
	}
	return customs, nil
}

func loadFiles(paths []string) ([]helpspot.File, error) {
	var files []helpspot.File
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading attachment %s: %w", path, err)
		}

		mimeType := mime.TypeByExtension(filepath.Ext(path))
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}

		files = append(files, helpspot.File{
			Filename: filepath.Base(path),
			MimeType: mimeType,
			Content:  content,
		})
	}
	return files, nil
}
