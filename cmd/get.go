package cmd

import (
	"github.com/spf13/cobra"
)

func newGetCmd(opts *options) *cobra.Command {
	var operation string

	getCmd := &cobra.Command{
		Use:   "get <resource-type>",
		Short: "Print the permissions of a resource type without prompting",
		Long: `Fetch the schema of a CloudFormation resource type and print the IAM
permissions of its handlers.

Without --operation every handler present in the schema is shown, in the
order create, read, update, delete, list.

Examples:
  cfnperms get AWS::S3::Bucket
  cfnperms get AWS::Lambda::Function -o update
  cfnperms get AWS::DynamoDB::Table --output yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showPermissions(cmd.Context(), cmd.OutOrStdout(), opts, args[0], operation)
		},
	}

	getCmd.Flags().StringVarP(&operation, "operation", "o", "", "create, read, update, delete or list (default all)")

	return getCmd
}
