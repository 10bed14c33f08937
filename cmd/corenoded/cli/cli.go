// Package cli defines the corenoded command surface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/empower1/corechain/internal/codec"
	"github.com/empower1/corechain/internal/consensus"
	"github.com/empower1/corechain/internal/crypto"
	"github.com/empower1/corechain/internal/storage"
)

// NewCLI builds the root command, wired against the already-constructed
// adapter and storage so subcommands can inspect live node state.
func NewCLI(adapter *consensus.Adapter, store *storage.Storage) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "corenoded",
		Short: "corenoded runs a BFT chain node.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("corenoded is running; see --help for subcommands.")
		},
	}

	var printChainCmd = &cobra.Command{
		Use:   "printchain",
		Short: "Print locally stored block headers from the latest backwards",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			header, err := store.GetLatestBlockHeader(ctx)
			if err != nil {
				fmt.Printf("no blocks stored: %v\n", err)
				return
			}
			for {
				fmt.Printf("number: %s  hash: %s  prev: %s\n", header.Number, codec.HashHeader(header), header.PrevHash)
				if header.Number == 0 {
					break
				}
				header, err = store.GetBlockHeader(ctx, header.Number-1)
				if err != nil {
					break
				}
			}
		},
	}

	var currentHeightCmd = &cobra.Command{
		Use:   "height",
		Short: "Print the current chain height",
		Run: func(cmd *cobra.Command, args []string) {
			number, err := adapter.GetCurrentNumber(cmd.Context())
			if err != nil {
				fmt.Printf("error: %v\n", err)
				return
			}
			fmt.Println(number)
		},
	}

	var genkeyOut string
	var genkeyCmd = &cobra.Command{
		Use:   "genkey",
		Short: "Generate a new wallet key and write it to disk as PEM",
		Run: func(cmd *cobra.Command, args []string) {
			wk, err := crypto.NewWalletKey()
			if err != nil {
				fmt.Printf("error: %v\n", err)
				return
			}
			if err := wk.Save(genkeyOut, ""); err != nil {
				fmt.Printf("error: %v\n", err)
				return
			}
			fmt.Printf("wrote %s\naddress: %s\n", genkeyOut, wk.Address())
		},
	}
	genkeyCmd.Flags().StringVar(&genkeyOut, "out", "wallet.pem", "path to write the generated key")

	rootCmd.AddCommand(printChainCmd, currentHeightCmd, genkeyCmd)
	return rootCmd
}
