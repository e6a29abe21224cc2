package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/hostfns/hostfns"
	"github.com/hostfns/hostfns/internal/bridge"
)

var runCmd = &cobra.Command{
	Use:   "run [MODULE.wasm] [A B]",
	Short: "Run a wasm guest against the hostfns host module",
	Long: `run instantiates the hostfns host module and WASI into a wazero runtime,
then instantiates MODULE.wasm. When MODULE.wasm is omitted, the built-in
bridge guest is used. A guest exporting "greeting" has it invoked and the
result printed; a guest exporting "sum" has it invoked when operands A and
B are given.`,
	Example: `  hostfns run
  hostfns run 2 3
  hostfns run guest.wasm 2 3`,
	Args: cobra.MaximumNArgs(3),
	RunE: runGuest,
}

func runGuest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	rc, cache, err := cfg.runtimeConfig()
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close(ctx)
	}

	r := wazero.NewRuntimeWithConfig(ctx, rc)
	defer r.Close(ctx) // closes everything this runtime created

	slog.Debug("instantiating host module", "module", hostfns.ModuleName)
	if _, err := hostfns.Instantiate(ctx, r); err != nil {
		return fmt.Errorf("instantiating %s: %w", hostfns.ModuleName, err)
	}
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		return fmt.Errorf("instantiating WASI: %w", err)
	}

	bin, operands, err := guestBinary(args)
	if err != nil {
		return err
	}

	mod, err := r.InstantiateWithConfig(ctx, bin, wazero.NewModuleConfig().
		WithStdout(cmd.OutOrStdout()).
		WithStderr(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("instantiating guest: %w", err)
	}

	if fn := mod.ExportedFunction(bridge.ExportGreeting); fn != nil {
		if err := checkSignature(bridge.ExportGreeting, fn, nil, []api.ValueType{api.ValueTypeI64}); err != nil {
			return err
		}
		results, err := fn.Call(ctx)
		if err != nil {
			return fmt.Errorf("calling %s: %w", bridge.ExportGreeting, err)
		}
		mem := mod.Memory()
		if mem == nil {
			return fmt.Errorf("guest exports %s but no memory", bridge.ExportGreeting)
		}
		ptr, size := uint32(results[0]>>32), uint32(results[0])
		buf, ok := mem.Read(ptr, size)
		if !ok {
			return fmt.Errorf("greeting out of memory range: ptr=%d size=%d", ptr, size)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(buf))
	}

	if fn := mod.ExportedFunction(bridge.ExportSum); fn != nil && len(operands) == 2 {
		i32 := api.ValueTypeI32
		if err := checkSignature(bridge.ExportSum, fn, []api.ValueType{i32, i32}, []api.ValueType{i32}); err != nil {
			return err
		}
		results, err := fn.Call(ctx, api.EncodeI32(operands[0]), api.EncodeI32(operands[1]))
		if err != nil {
			return fmt.Errorf("calling %s: %w", bridge.ExportSum, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d + %d = %d\n",
			operands[0], operands[1], api.DecodeI32(results[0]))
	}
	return nil
}

// checkSignature rejects a guest export whose type does not match the
// bridge ABI before it is called: run accepts arbitrary user modules, and
// calling a mismatched export would otherwise yield results the code below
// cannot read.
func checkSignature(name string, fn api.Function, params, results []api.ValueType) error {
	def := fn.Definition()
	if slices.Equal(def.ParamTypes(), params) && slices.Equal(def.ResultTypes(), results) {
		return nil
	}
	return fmt.Errorf("guest export %s has signature %s, want %s",
		name, signature(def.ParamTypes(), def.ResultTypes()), signature(params, results))
}

func signature(params, results []api.ValueType) string {
	return fmt.Sprintf("(%s) -> (%s)", valueTypeNames(params), valueTypeNames(results))
}

func valueTypeNames(types []api.ValueType) string {
	names := make([]string, len(types))
	for i, vt := range types {
		names[i] = api.ValueTypeName(vt)
	}
	return strings.Join(names, ", ")
}

// guestBinary splits args into the guest module bytes and numeric operands.
// A leading argument that parses as an integer means the built-in bridge
// module is run.
func guestBinary(args []string) ([]byte, []int32, error) {
	bin := bridge.Binary()
	rest := args
	if len(args) > 0 {
		if _, err := strconv.ParseInt(args[0], 10, 32); err != nil {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return nil, nil, fmt.Errorf("reading module: %w", err)
			}
			slog.Debug("loaded guest module", "path", args[0], "size", len(data))
			bin = data
			rest = args[1:]
		}
	}

	var operands []int32
	for _, s := range rest {
		v, err := parseInt32(s)
		if err != nil {
			return nil, nil, err
		}
		operands = append(operands, v)
	}
	if len(operands) != 0 && len(operands) != 2 {
		return nil, nil, fmt.Errorf("expected two operands, got %d", len(operands))
	}
	return bin, operands, nil
}
