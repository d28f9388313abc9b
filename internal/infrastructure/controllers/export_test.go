package controllers

import "github.com/spf13/cobra"

// RunForTest exposes the non-terminating part of RunController.Execute.
func (it *RunController) RunForTest(cmd *cobra.Command) error {
	return it.run(cmd)
}
