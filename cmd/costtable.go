package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TopiaNetwork/topia-costmodel/checkpoint"
	"github.com/TopiaNetwork/topia-costmodel/codec"
	"github.com/TopiaNetwork/topia-costmodel/configuration"
	"github.com/TopiaNetwork/topia-costmodel/costmodel"
	tplog "github.com/TopiaNetwork/topia-costmodel/log"
	txbasic "github.com/TopiaNetwork/topia-costmodel/transaction"
)

const (
	costTableFuncName = "costtable"
	costTableCmdDes   = "Operate the instruction cost table: dump, estimate."
)

var storePath string
var storeName string
var txFilePath string
var demoteProgramWriteLocks bool

var costTableDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dumps the checkpointed instruction cost table.",
	Long:  `Loads the latest cost table checkpoint from storage and prints every priced program.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 {
			return fmt.Errorf("trailing args detected")
		}
		cmd.SilenceUsage = true

		log, err := tplog.CreateMainLogger(tplog.InfoLevel, tplog.DefaultLogFormat, tplog.StdErrOutput, "")
		if err != nil {
			return err
		}

		store, err := checkpoint.NewCheckpointStore(log, storeName, storePath)
		if err != nil {
			return err
		}
		defer store.Close()

		snapshot, version, err := store.Load()
		if err != nil {
			return err
		}
		if snapshot == nil {
			fmt.Println("no cost table checkpoint")
			return nil
		}

		fmt.Printf("checkpoint version %d, %d entries\n", version, len(snapshot))
		for program, cost := range snapshot {
			fmt.Printf("%s\t%d\n", program, cost)
		}

		return nil
	},
}

var costTableEstimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimates the cost of a transaction.",
	Long:  `Reads a JSON transaction file and prints its four cost components and their sum.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 {
			return fmt.Errorf("trailing args detected")
		}
		cmd.SilenceUsage = true

		log, err := tplog.CreateMainLogger(tplog.InfoLevel, tplog.DefaultLogFormat, tplog.StdErrOutput, "")
		if err != nil {
			return err
		}

		txBytes, err := os.ReadFile(txFilePath)
		if err != nil {
			return err
		}

		var tx txbasic.Transaction
		marshaler := codec.CreateMarshaler(codec.CodecType_JSON)
		if err := marshaler.Unmarshal(txBytes, &tx); err != nil {
			return err
		}

		costModel := costmodel.NewCostModel(log, configuration.GetConfiguration().CostConfig)
		if storePath != "" {
			store, err := checkpoint.NewCheckpointStore(log, storeName, storePath)
			if err != nil {
				return err
			}
			defer store.Close()

			runner := checkpoint.NewCheckpointRunner(log, costModel, store, configuration.GetConfiguration().ChkConfig)
			if err := runner.Restore(); err != nil {
				return err
			}
		} else if err := costModel.InitializeCostTable(nil); err != nil {
			return err
		}

		txCost := costModel.CalculateCost(&tx, demoteProgramWriteLocks)
		fmt.Printf("signature cost:  %d\n", txCost.SignatureCost)
		fmt.Printf("write lock cost: %d\n", txCost.WriteLockCost)
		fmt.Printf("data bytes cost: %d\n", txCost.DataBytesCost)
		fmt.Printf("execution cost:  %d\n", txCost.ExecutionCost)
		fmt.Printf("sum:             %d\n", txCost.Sum())
		fmt.Printf("writable accounts (%d):\n", len(txCost.WritableAccounts))
		for _, acct := range txCost.WritableAccounts {
			fmt.Printf("  %s\n", acct)
		}

		return nil
	},
}

func dumpCmd() *cobra.Command {
	flags := costTableDumpCmd.PersistentFlags()
	flags.StringVarP(&storePath, "path", "", "StorageInfo/StorageCostTable", "the cost table checkpoint storage path")
	flags.StringVarP(&storeName, "name", "", "costtable", "the cost table checkpoint storage name")
	return costTableDumpCmd
}

func estimateCmd() *cobra.Command {
	flags := costTableEstimateCmd.PersistentFlags()
	flags.StringVarP(&txFilePath, "tx", "", "", "the JSON transaction file to estimate")
	flags.StringVarP(&storePath, "path", "", "", "the cost table checkpoint storage path; built-in baseline only when blank")
	flags.StringVarP(&storeName, "name", "", "costtable", "the cost table checkpoint storage name")
	flags.BoolVarP(&demoteProgramWriteLocks, "demote", "", true, "demote write locks of accounts invoked as programs")
	return costTableEstimateCmd
}

var costTableCmd = &cobra.Command{
	Use:   costTableFuncName,
	Short: fmt.Sprint(costTableCmdDes),
	Long:  fmt.Sprint(costTableCmdDes),
}

func CostTableCmd() *cobra.Command {
	costTableCmd.AddCommand(dumpCmd())
	costTableCmd.AddCommand(estimateCmd())

	return costTableCmd
}
