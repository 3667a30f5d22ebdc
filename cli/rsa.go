package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quest-demos/encryption"
	"quest-demos/models"
	"quest-demos/service"
)

func newKeyCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "key",
		Short: "Show the RSA key parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := loadKey(cmd, opts)
			if err != nil {
				return err
			}
			info := service.NewDemoService(key, service.Options{}, nil).KeyInfo()
			rows := [][]string{
				{"p", info.P},
				{"q", info.Q},
				{"n", info.N},
				{"phi(n)", info.Phi},
				{"e (public)", info.E},
				{"d (private)", info.D},
				{"bits", fmt.Sprint(info.Bits)},
				{"fingerprint", info.Fingerprint},
			}
			return render(cmd.OutOrStdout(), opts, info, []string{"Parameter", "Value"}, rows)
		},
	}
}

func newEncryptCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <text>",
		Short: "Encrypt text one character at a time",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := loadKey(cmd, opts)
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			cipher, err := encryption.EncryptMessage(text, key)
			if err != nil {
				return err
			}

			var rows [][]string
			i := 0
			for _, r := range text {
				rows = append(rows, []string{string(r), fmt.Sprint(r), cipher[i].String()})
				i++
			}
			resp := models.EncryptResponse{
				Ciphertext:    cipher,
				CiphertextHex: encryption.NewCryptoService().EncodeCiphertext(cipher),
			}
			return render(cmd.OutOrStdout(), opts, resp, []string{"Char", "Code", "Cipher"}, rows)
		},
	}
}

func newDecryptCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <c1> [c2...]",
		Short: "Decrypt ciphertext units back to text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := loadKey(cmd, opts)
			if err != nil {
				return err
			}
			var units []string
			for _, a := range args {
				units = append(units, strings.Split(strings.Trim(a, "[]"), ",")...)
			}
			cipher, err := encryption.ParseCiphertext(units)
			if err != nil {
				return err
			}
			text, err := encryption.DecryptMessage(cipher, key)
			if err != nil {
				return err
			}

			rows := [][]string{{strings.Join(cipher.Strings(), ", "), text}}
			return render(cmd.OutOrStdout(), opts, models.DecryptResponse{Text: text}, []string{"Ciphertext", "Text"}, rows)
		},
	}
}
