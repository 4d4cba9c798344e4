package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/segpro/complaints_analyzer/config"
)

// users maps web-upload session ids to the bot chat that requested them.
var (
	users      = map[string]int64{}
	sessionsMu sync.Mutex
)

var bot *tgbotapi.BotAPI

func sessionChat(sessionID string) (int64, bool) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	chatID, ok := users[sessionID]
	return chatID, ok
}

func expireSessions(now time.Time) {
	sessionsMu.Lock()
	defer sessionsMu.Unlock()
	for uid, created := range toDelete {
		if now.After(created.Add(time.Hour)) {
			delete(users, uid)
			delete(toDelete, uid)
		}
	}
}

func main() {
	fmt.Println("started")
	cfg := config.GetConfig()

	var err error
	bot, err = tgbotapi.NewBotAPI(cfg.TgToken)
	if err != nil {
		log.Fatal("tg error ", err)
	}
	fmt.Println("bot init")

	http.HandleFunc("/", handleIndex)
	http.HandleFunc("/upload", handleUpload)
	http.HandleFunc("/api/summary", handleSummaryAPI)
	http.HandleFunc("/export.csv", handleExportCSV)

	log.Printf("Authorized on account %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	go func() {
		fmt.Println("listen on:", cfg.HttpAddr)
		err := http.ListenAndServe(cfg.HttpAddr, nil)
		if err != nil {
			fmt.Println("Error starting server:", err)
			os.Exit(1)
		}
	}()

	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		log.Fatal("updates error ", err)
	}

	go func() {
		for {
			time.Sleep(time.Minute)
			now := time.Now()
			expireSessions(now)
			sweepTableCache(now)
			removeOldFiles("uploads", now.Add(-2*time.Hour))
		}
	}()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		switch {
		case update.Message.Document != nil:
			go handleDocument(bot, update.Message)
		case update.Message.IsCommand():
			go handleCommand(bot, update)
		case update.Message.Text != "":
			go handleText(bot, update)
		}
	}
}

// removeOldFiles drops uploaded spreadsheets once they are past their
// useful life. Records stay in memory, the files are only needed during
// parsing.
func removeOldFiles(dirPath string, maxAge time.Time) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}

	for _, file := range files {
		filePath := filepath.Join(dirPath, file.Name())
		if file.IsDir() {
			if err := removeOldFiles(filePath, maxAge); err != nil {
				return err
			}
			continue
		}
		fileStat, err := os.Stat(filePath)
		if err != nil {
			return err
		}
		if fileStat.ModTime().Before(maxAge) {
			if err := os.Remove(filePath); err != nil {
				return err
			}
			fmt.Printf("Removed file: %s\n", filePath)
		}
	}
	return nil
}
