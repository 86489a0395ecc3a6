package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/tidwall/gjson"
)

// setwebhook registers (or clears) the bot's webhook URL with
// Telegram and prints the resulting webhook info.
//
//	setwebhook              use WEBHOOK_URL from the environment
//	setwebhook <url>        use an explicit URL
//	setwebhook --clear      remove the webhook (switch to polling)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

func main() {
	_ = godotenv.Load()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		fmt.Println(red("✗"), "BOT_TOKEN is not set")
		os.Exit(1)
	}

	webhookURL := os.Getenv("WEBHOOK_URL")
	clear := false
	if len(os.Args) > 1 {
		if os.Args[1] == "--clear" {
			clear = true
		} else {
			webhookURL = os.Args[1]
		}
	}

	client := &http.Client{Timeout: 15 * time.Second}

	if clear {
		fmt.Println(yellow("→"), "Clearing webhook...")
		body := callAPI(client, token, "deleteWebhook", nil)
		if gjson.Get(body, "ok").Bool() {
			fmt.Println(green("✓"), "Webhook removed, bot will use polling")
		} else {
			fmt.Println(red("✗"), "Failed:", gjson.Get(body, "description").String())
			os.Exit(1)
		}
	} else {
		if webhookURL == "" {
			fmt.Println(red("✗"), "No webhook URL. Set WEBHOOK_URL or pass one as an argument.")
			os.Exit(1)
		}

		fmt.Println(yellow("→"), "Setting webhook to", cyan(webhookURL))
		body := callAPI(client, token, "setWebhook", url.Values{"url": {webhookURL}})
		if gjson.Get(body, "ok").Bool() {
			fmt.Println(green("✓"), "Webhook set")
		} else {
			fmt.Println(red("✗"), "Failed:", gjson.Get(body, "description").String())
			os.Exit(1)
		}
	}

	// Show what Telegram ended up with
	body := callAPI(client, token, "getWebhookInfo", nil)
	info := gjson.Get(body, "result")
	fmt.Println()
	fmt.Println(cyan("Webhook info:"))
	fmt.Println("  URL:            ", info.Get("url").String())
	fmt.Println("  Pending updates:", info.Get("pending_update_count").Int())
	if lastErr := info.Get("last_error_message"); lastErr.Exists() && lastErr.String() != "" {
		fmt.Println(" ", yellow("Last error:"), lastErr.String())
	}
}

func callAPI(client *http.Client, token, method string, params url.Values) string {
	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/%s", token, method)

	var resp *http.Response
	var err error
	if params == nil {
		resp, err = client.Get(endpoint)
	} else {
		resp, err = client.PostForm(endpoint, params)
	}
	if err != nil {
		fmt.Println(red("✗"), "Telegram API unreachable:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Println(red("✗"), "Failed to read response:", err)
		os.Exit(1)
	}
	return string(body)
}
