// Package main はCLIツールのエントリポイント。
package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var (
	apiURL  string
	output  string
	timeout time.Duration
)

// HTTPクライアント
var httpClient *http.Client

func main() {
	rootCmd := &cobra.Command{
		Use:   "attrctl",
		Short: "Key Attributes Service CLI",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if apiURL == "" {
				apiURL = os.Getenv("ATTRCTL_API_URL")
			}
			httpClient = &http.Client{Timeout: timeout}
		},
	}

	// グローバルフラグ
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API endpoint URL (or set ATTRCTL_API_URL)")
	rootCmd.PersistentFlags().StringVar(&output, "output", "text", "Output format: text, json")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// サブコマンド登録
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(getCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(signCmd())
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionCmd はバージョン情報を表示する。
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("attrctl version %s\n", version)
		},
	}
}

// registerCmd は鍵属性の登録コマンド。
// 属性はワイヤ形式のJSONファイルで指定する。
func registerCmd() *cobra.Command {
	var name string
	var attributesFile string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register key attributes from a wire-format JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				return fmt.Errorf("--api-url is required (or set ATTRCTL_API_URL)")
			}

			attrsJSON, err := os.ReadFile(attributesFile)
			if err != nil {
				return fmt.Errorf("reading attributes file: %w", err)
			}
			var attrs json.RawMessage = attrsJSON

			reqBody, err := json.Marshal(map[string]interface{}{
				"name":       name,
				"attributes": attrs,
			})
			if err != nil {
				return fmt.Errorf("building request: %w", err)
			}

			url := fmt.Sprintf("%s/v1/keys", apiURL)
			resp, err := httpClient.Post(url, "application/json", bytes.NewReader(reqBody))
			if err != nil {
				return fmt.Errorf("API request failed: %w", err)
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("reading response: %w", err)
			}

			if resp.StatusCode != http.StatusCreated {
				return handleErrorResponse(resp.StatusCode, body)
			}

			if output == "json" {
				fmt.Println(string(body))
			} else {
				var result map[string]interface{}
				if err := json.Unmarshal(body, &result); err != nil {
					return fmt.Errorf("parsing response: %w", err)
				}
				fmt.Printf("Registered key %q (id: %s)\n", name, result["id"])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Key name (required)")
	cmd.Flags().StringVar(&attributesFile, "attributes", "", "Path to wire-format attributes JSON (required)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("attributes")
	return cmd
}

// getCmd は鍵属性の取得コマンド。
func getCmd() *cobra.Command {
	var keyID string
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get key attributes by ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				return fmt.Errorf("--api-url is required (or set ATTRCTL_API_URL)")
			}

			url := fmt.Sprintf("%s/v1/keys/%s", apiURL, keyID)
			resp, err := httpClient.Get(url)
			if err != nil {
				return fmt.Errorf("API request failed: %w", err)
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("reading response: %w", err)
			}

			if resp.StatusCode != http.StatusOK {
				return handleErrorResponse(resp.StatusCode, body)
			}

			if output == "json" {
				fmt.Println(string(body))
			} else {
				var result map[string]interface{}
				if err := json.Unmarshal(body, &result); err != nil {
					return fmt.Errorf("parsing response: %w", err)
				}
				fmt.Printf("%s (id: %s)\n", result["name"], result["id"])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&keyID, "id", "", "Key ID (required)")
	cmd.MarkFlagRequired("id")
	return cmd
}

// listCmd は鍵属性の一覧コマンド。
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered key attributes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				return fmt.Errorf("--api-url is required (or set ATTRCTL_API_URL)")
			}

			url := fmt.Sprintf("%s/v1/keys", apiURL)
			resp, err := httpClient.Get(url)
			if err != nil {
				return fmt.Errorf("API request failed: %w", err)
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("reading response: %w", err)
			}

			if resp.StatusCode != http.StatusOK {
				return handleErrorResponse(resp.StatusCode, body)
			}

			if output == "json" {
				fmt.Println(string(body))
				return nil
			}

			var result struct {
				Keys []struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"keys"`
			}
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("parsing response: %w", err)
			}
			for _, key := range result.Keys {
				fmt.Printf("%s\t%s\n", key.ID, key.Name)
			}
			return nil
		},
	}
}

// deleteCmd は鍵属性の削除コマンド。
func deleteCmd() *cobra.Command {
	var keyID string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete key attributes by ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				return fmt.Errorf("--api-url is required (or set ATTRCTL_API_URL)")
			}

			url := fmt.Sprintf("%s/v1/keys/%s", apiURL, keyID)
			req, err := http.NewRequest(http.MethodDelete, url, nil)
			if err != nil {
				return fmt.Errorf("building request: %w", err)
			}
			resp, err := httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("API request failed: %w", err)
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("reading response: %w", err)
			}

			if resp.StatusCode != http.StatusNoContent {
				return handleErrorResponse(resp.StatusCode, body)
			}

			fmt.Printf("Deleted key %s\n", keyID)
			return nil
		},
	}
	cmd.Flags().StringVar(&keyID, "id", "", "Key ID (required)")
	cmd.MarkFlagRequired("id")
	return cmd
}

// signCmd は署名コマンド。
func signCmd() *cobra.Command {
	var keyID string
	var messageFile string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message with a registered key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				return fmt.Errorf("--api-url is required (or set ATTRCTL_API_URL)")
			}

			message, err := os.ReadFile(messageFile)
			if err != nil {
				return fmt.Errorf("reading message file: %w", err)
			}

			reqBody, err := json.Marshal(map[string]string{
				"message": base64.StdEncoding.EncodeToString(message),
			})
			if err != nil {
				return fmt.Errorf("building request: %w", err)
			}

			url := fmt.Sprintf("%s/v1/keys/%s/sign", apiURL, keyID)
			resp, err := httpClient.Post(url, "application/json", bytes.NewReader(reqBody))
			if err != nil {
				return fmt.Errorf("API request failed: %w", err)
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("reading response: %w", err)
			}

			if resp.StatusCode != http.StatusOK {
				return handleErrorResponse(resp.StatusCode, body)
			}

			if output == "json" {
				fmt.Println(string(body))
			} else {
				var result map[string]interface{}
				if err := json.Unmarshal(body, &result); err != nil {
					return fmt.Errorf("parsing response: %w", err)
				}
				fmt.Println(result["signature"])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&keyID, "id", "", "Key ID (required)")
	cmd.Flags().StringVar(&messageFile, "message", "", "Path to message file (required)")
	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("message")
	return cmd
}

func handleErrorResponse(statusCode int, body []byte) error {
	var errResp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&errResp); err == nil && errResp.Message != "" {
		return fmt.Errorf("Error: %s", errResp.Message)
	}
	return fmt.Errorf("Error: server returned status %d", statusCode)
}
