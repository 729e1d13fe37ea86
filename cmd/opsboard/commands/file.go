package commands

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gmnfield/opsboard/internal/format"
	"github.com/gmnfield/opsboard/internal/printer"
	"github.com/gmnfield/opsboard/internal/repo"
)

var (
	fileOutputFormat string
	fileWorkOrderID  string
	fileNameFlag     string
	fileMimeFlag     string
	fileOutPath      string
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Manage work order attachments",
}

var fileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List attachments, flagging orphans",
	Long: `List file records. Records whose work order no longer exists are
flagged ORPHAN; they are kept for manual review, never cleaned up
automatically. Use --wo to restrict to one work order.`,
	RunE: runFileList,
}

var fileAttachCmd = &cobra.Command{
	Use:   "attach LOCAL_PATH",
	Short: "Attach a local file to a work order",
	Long: `Read a local file and attach it to a work order. The display name
defaults to the file's base name and the MIME type is guessed from the
extension unless overridden.

Examples:
  opsboard file attach ./invoice.pdf --wo 1b2c3d4e
  opsboard file attach ./site.jpg --wo 1b2c3d4e --name "before photo"`,
	Args: cobra.ExactArgs(1),
	RunE: runFileAttach,
}

var fileContentCmd = &cobra.Command{
	Use:   "content FILE_ID",
	Short: "Fetch an attachment's bytes",
	Long: `Fetch the stored bytes for an attachment and write them to --out, or
to stdout when --out is omitted. If the record exists but its payload
is gone the command reports the preview as unavailable.`,
	Args: cobra.ExactArgs(1),
	RunE: runFileContent,
}

var fileDeleteCmd = &cobra.Command{
	Use:   "delete FILE_ID",
	Short: "Delete an attachment and its payload",
	Args:  cobra.ExactArgs(1),
	RunE:  runFileDelete,
}

var fileOrphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List attachments whose work order is gone",
	RunE:  runFileOrphans,
}

func init() {
	fileListCmd.Flags().StringVarP(&fileOutputFormat, "output", "o", "default", "Output format: default or json")
	fileListCmd.Flags().StringVar(&fileWorkOrderID, "wo", "", "Only show attachments for this work order")

	fileAttachCmd.Flags().StringVar(&fileWorkOrderID, "wo", "", "Work order id (required)")
	fileAttachCmd.Flags().StringVar(&fileNameFlag, "name", "", "Display name (defaults to the file's base name)")
	fileAttachCmd.Flags().StringVar(&fileMimeFlag, "mime", "", "MIME type (guessed from the extension if omitted)")
	fileAttachCmd.MarkFlagRequired("wo")

	fileContentCmd.Flags().StringVar(&fileOutPath, "out", "", "Write bytes to this path instead of stdout")

	fileCmd.AddCommand(fileListCmd, fileAttachCmd, fileContentCmd, fileDeleteCmd, fileOrphansCmd)
	rootCmd.AddCommand(fileCmd)
}

func runFileList(cmd *cobra.Command, args []string) error {
	client, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	files := repo.NewFiles(client)

	records := files.List(ctx)
	if fileWorkOrderID != "" {
		records = files.ForWorkOrder(ctx, fileWorkOrderID)
	}

	switch fileOutputFormat {
	case "default":
		orphanIDs := make(map[string]bool)
		for _, rec := range files.Orphans(ctx) {
			orphanIDs[rec.ID] = true
		}
		format.FormatFileTable(os.Stdout, records, orphanIDs, cfg.Instance)
		return nil
	case "json":
		return format.FormatJSONL(os.Stdout, records)
	default:
		return printer.Error("invalid output format",
			fmt.Sprintf("Unknown format: %s", fileOutputFormat),
			[]string{"Valid formats: default, json"})
	}
}

func runFileAttach(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return printer.Error(
			"cannot read file",
			fmt.Sprintf("Failed to read %s: %v", path, err),
			[]string{"Check the path exists and is readable"},
		)
	}

	name := fileNameFlag
	if name == "" {
		name = filepath.Base(path)
	}
	mimeType := fileMimeFlag
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(path))
	}

	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	rec, err := repo.NewFiles(client).Attach(context.Background(), fileWorkOrderID, name, mimeType, content)
	if err != nil {
		return printer.Failure(err)
	}
	printer.Success("attached %s (%d bytes) to work order %s as %s\n", rec.Name, rec.ByteSize, rec.WorkOrderID, rec.ID)
	return nil
}

func runFileContent(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	data, ok, err := repo.NewFiles(client).Content(context.Background(), args[0])
	if err != nil {
		return printer.Failure(err)
	}
	if !ok {
		printer.Warning("preview unavailable: the record exists but its payload is missing\n")
		return nil
	}

	if fileOutPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(fileOutPath, data, 0o644); err != nil {
		return printer.Error("cannot write file",
			fmt.Sprintf("Failed to write %s: %v", fileOutPath, err), nil)
	}
	printer.Success("wrote %d bytes to %s\n", len(data), fileOutPath)
	return nil
}

func runFileDelete(cmd *cobra.Command, args []string) error {
	client, _, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := repo.NewFiles(client).Delete(context.Background(), args[0]); err != nil {
		return printer.Failure(err)
	}
	printer.Success("deleted file %s\n", args[0])
	return nil
}

func runFileOrphans(cmd *cobra.Command, args []string) error {
	client, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer client.Close()

	orphans := repo.NewFiles(client).Orphans(context.Background())
	if len(orphans) == 0 {
		printer.Info("no orphaned attachments\n")
		return nil
	}
	orphanIDs := make(map[string]bool, len(orphans))
	for _, rec := range orphans {
		orphanIDs[rec.ID] = true
	}
	format.FormatFileTable(os.Stdout, orphans, orphanIDs, cfg.Instance)
	return nil
}
