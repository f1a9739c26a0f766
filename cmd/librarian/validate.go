package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Gobd/librarian"
	"github.com/Gobd/librarian/errs"
	"github.com/Gobd/librarian/schema"
)

var errInvalidPayloads = errors.New("invalid payloads")

// result is printed for every validated file.
type result struct {
	File   string          `json:"file"`
	Kind   schema.Kind     `json:"kind"`
	Valid  bool            `json:"valid"`
	Record any             `json:"record,omitempty"`
	Error  *errs.HTTPError `json:"error,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "validate --kind KIND FILE...",
		Short: "Validate JSON or YAML payload files against a schema kind",
		Long: "Validate decodes every file as the given schema kind and prints the typed\n" +
			"record or the violations. Files ending in .yaml or .yml are read as YAML,\n" +
			"anything else as JSON. Use - to read standard input.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := schema.ParseKind(kind)
			if err != nil {
				return err
			}
			failed := 0
			for _, path := range args {
				res, err := a.validateFile(cmd, k, path)
				if err != nil {
					return err
				}
				if !res.Valid {
					failed++
				}
				if err := a.printJSON(res); err != nil {
					return err
				}
			}
			a.log.Info().Int("files", len(args)).Int("failed", failed).Str("kind", string(k)).Msg("validation done")
			if failed > 0 {
				return errInvalidPayloads
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "schema kind, see the kinds command")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func (a *app) validateFile(cmd *cobra.Command, kind schema.Kind, path string) (result, error) {
	res := result{File: path, Kind: kind}
	raw, err := readPayload(cmd.InOrStdin(), path)
	if err != nil {
		a.log.Warn().Err(err).Str("file", path).Msg("unreadable payload")
		res.Error = errs.FromError(err)
		if res.Error.Status == http.StatusInternalServerError {
			return res, fmt.Errorf("read %s: %w", path, err)
		}
		return res, nil
	}

	rec, err := schema.DecodeCtx(cmd.Context(), kind, raw)
	if err != nil {
		res.Error = errs.FromError(err)
		if res.Error.Status == http.StatusInternalServerError {
			return res, fmt.Errorf("decode %s: %w", path, err)
		}
		a.log.Debug().Str("file", path).Int("violations", len(res.Error.Errors)).Msg("payload rejected")
		return res, nil
	}
	res.Valid = true
	res.Record = rec
	return res, nil
}

// readPayload reads a JSON or YAML object from path, or from stdin for "-".
func readPayload(stdin io.Reader, path string) (map[string]any, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &raw); err != nil {
			return nil, errs.NewBadRequestError("Malformed YAML: "+err.Error(), false, nil, nil)
		}
	default:
		if raw, err = librarian.ReadObject(bytes.NewReader(b)); err != nil {
			return nil, err
		}
	}
	if raw == nil {
		return nil, errs.NewBadRequestError("Payload is empty or null", false, nil, nil)
	}
	return raw, nil
}
