package cmd

import (
	"fmt"
	"time"

	"github.com/Gthulhu/schedsim/pkg/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newTokenCommand(opts *rootOptions) *cobra.Command {
	var (
		clientID      string
		publicKeyOnly bool
		generateKey   bool
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token signed with the configured key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if generateKey {
				key, _, err := util.InitRSAPrivateKey("")
				if err != nil {
					return err
				}
				publicPEM, err := util.EncodeRSAPublicKeyPEM(&key.PublicKey)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(out, util.EncodeRSAPrivateKeyPEM(key), publicPEM)
				return nil
			}

			pemData := opts.cfg.Token.RsaPrivateKeyPem.Value()
			if pemData == "" {
				return errors.New("token.rsa_private_key_pem is not configured")
			}
			key, err := util.ParseRSAPrivateKeyPEM(pemData)
			if err != nil {
				return err
			}
			publicPEM, err := util.EncodeRSAPublicKeyPEM(&key.PublicKey)
			if err != nil {
				return err
			}
			if publicKeyOnly {
				_, _ = fmt.Fprint(out, publicPEM)
				return nil
			}

			svc, stop, err := opts.localService(cmd.Context())
			if err != nil {
				return err
			}
			defer stop()
			if clientID == "" {
				clientID = opts.cfg.Client.ClientID
			}
			token, expiredAt, err := svc.IssueToken(cmd.Context(), clientID, publicPEM)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, token)
			_, _ = fmt.Fprintf(out, "expires %s\n", time.Unix(expiredAt, 0).UTC().Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&clientID, "client-id", "", "token subject, defaults to client.client_id")
	cmd.Flags().BoolVar(&publicKeyOnly, "public-key", false, "print the public key clients present instead of a token")
	cmd.Flags().BoolVar(&generateKey, "generate-key", false, "print a fresh RSA key pair and exit")
	return cmd
}
