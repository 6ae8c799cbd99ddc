package main

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brendoncarroll/go-kx"
	"github.com/brendoncarroll/go-kx/crypto/dhgroup"
	"github.com/brendoncarroll/go-kx/kschedule"
	"github.com/brendoncarroll/go-kx/p/anonkx"
)

var log = kx.Logger

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().IntVar(&demoBits, "bits", dhgroup.DefaultBits, "modulus size class")
}

var rootCmd = &cobra.Command{
	Use:   "kxutil",
	Short: "Key exchange testing and diagnostics",
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the well-known DH groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		src := dhgroup.WellKnown()
		for _, bits := range dhgroup.Sizes() {
			gp, err := src.Params(bits)
			if err != nil {
				return err
			}
			cmd.Printf("%4d bits  g=%d  p=%s...\n", gp.Bits(), 2, hex.EncodeToString(gp.P.Bytes()[:8]))
			gp.Release()
		}
		return nil
	},
}

var demoBits int

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run an anonymous DH exchange in memory",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverSched := kschedule.New(kschedule.Params{})
		clientSched := kschedule.New(kschedule.Params{})
		server, err := anonkx.NewSession(anonkx.SessionParams{
			Role:     anonkx.Server,
			Bits:     demoBits,
			Consumer: serverSched,
		})
		if err != nil {
			return err
		}
		client, err := anonkx.NewSession(anonkx.SessionParams{
			Role:     anonkx.Client,
			Consumer: clientSched,
		})
		if err != nil {
			return err
		}

		m1, err := server.GenerateServerKX()
		if err != nil {
			return err
		}
		log.Infof("server kx: %d bytes", len(m1))
		if err := client.ProcessServerKX(m1); err != nil {
			return err
		}
		m2, err := client.GenerateClientKX()
		if err != nil {
			return err
		}
		log.Infof("client kx: %d bytes", len(m2))
		if err := server.ProcessClientKX(m2); err != nil {
			return err
		}

		sk, err := serverSched.KeyMaterial()
		if err != nil {
			return err
		}
		ck, err := clientSched.KeyMaterial()
		if err != nil {
			return err
		}
		info, err := server.Negotiated()
		if err != nil {
			return err
		}
		cmd.Printf("negotiated: %v %d bits\n", info.Kind, info.ModulusBits)
		cmd.Printf("server keys: %s\n", hex.EncodeToString(sk[:16]))
		cmd.Printf("client keys: %s\n", hex.EncodeToString(ck[:16]))
		if !bytes.Equal(sk, ck) {
			return fmt.Errorf("key material mismatch")
		}
		return nil
	},
}
