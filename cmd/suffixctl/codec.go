package main

import (
	"fmt"

	"github.com/danmuck/suffixctl/internal/attribution"
	"github.com/danmuck/suffixctl/internal/config"
	"github.com/danmuck/suffixctl/internal/indexer"
	"github.com/danmuck/suffixctl/internal/protocol/calldata"
	"github.com/danmuck/suffixctl/internal/protocol/hexdata"
	"github.com/danmuck/suffixctl/internal/protocol/suffix"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <code>",
		Short: "Print the attribution suffix for a builder code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trailer, err := suffix.EncodeIdentifier(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hexdata.Format(trailer))
			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "Extract the attribution suffix from call data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := hexdata.Parse(args[0])
			if err != nil {
				return err
			}
			printResult(cmd, indexer.Classify(buf))
			return nil
		},
	}
}

func printResult(cmd *cobra.Command, res indexer.Result) {
	out := cmd.OutOrStdout()
	if res.Status != indexer.StatusPresent {
		fmt.Fprintf(out, "status=%s reason=%q\n", res.Status, res.Err)
		return
	}
	fmt.Fprintf(out, "status=%s code=%q schema=%s payload=%s\n",
		res.Status, res.Attribution.Code, res.Attribution.Schema, hexdata.Format(res.Payload))
}

func newAttachCmd() *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "attach <payload-hex>",
		Short: "Append the attribution suffix to call data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := hexdata.Parse(args[0])
			if err != nil {
				return err
			}
			trailer, err := suffix.EncodeIdentifier(code)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hexdata.Format(suffix.Combine(payload, trailer)))
			return nil
		},
	}
	cmd.Flags().StringVar(&code, "code", config.DefaultBuilderCode, "builder code to attach")
	return cmd
}

func newMintCmd() *cobra.Command {
	var (
		to       string
		code     string
		contract string
	)
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Build an attributed safeMint(to) call",
		RunE: func(cmd *cobra.Command, args []string) error {
			recipient, err := calldata.ParseAddress(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			target, err := calldata.ParseAddress(contract)
			if err != nil {
				return fmt.Errorf("--contract: %w", err)
			}
			a, err := attribution.New(attribution.Options{
				Code:     code,
				Contract: target,
				Policy:   attribution.PolicyRequire,
				Logger:   zerolog.Nop(),
			})
			if err != nil {
				return err
			}
			call := a.MintCall(recipient)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "to=%s\n", call.To)
			fmt.Fprintf(out, "value=%d\n", call.Value)
			fmt.Fprintf(out, "data=%s\n", hexdata.Format(call.Data))
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient address")
	cmd.Flags().StringVar(&code, "code", config.DefaultBuilderCode, "builder code to attach")
	cmd.Flags().StringVar(&contract, "contract", config.DefaultNFTContract, "NFT contract address")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
