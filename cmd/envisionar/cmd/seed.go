package cmd

import (
	"fmt"
	"time"

	"github.com/envisionar/portal/internal/database/memory"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	seedOut   string
	seedForce bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write a demo seed file for the memory backend",
	Long: `Write a demo data set, dated around today, for BACKEND=memory.

The demo accounts are ` + memory.DemoLeaderEmail + ` (pastor) and
` + memory.DemoMemberEmail + ` (member), both with password ` + memory.DemoPassword + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDemoSeed(afero.NewOsFs(), seedOut, seedForce, time.Now())
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedOut, "out", "seed.yaml", "output path")
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "overwrite an existing file")
	rootCmd.AddCommand(seedCmd)
}

func writeDemoSeed(fs afero.Fs, path string, force bool, now time.Time) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return err
	}
	if exists && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	return memory.WriteSeed(fs, path, memory.DemoSeed(now))
}
