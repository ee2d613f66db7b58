package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ivlev/bracketscan/internal/analyzer"
	"github.com/ivlev/bracketscan/internal/config"
	"github.com/ivlev/bracketscan/internal/engine"
	"github.com/ivlev/bracketscan/internal/export"
	"github.com/ivlev/bracketscan/internal/inspect"
	"github.com/ivlev/bracketscan/internal/layout"
	"github.com/ivlev/bracketscan/internal/source"
	"github.com/ivlev/bracketscan/internal/system"
)

// Задается при сборке: -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("[!] Не удалось прочитать .env: %v", err)
	}

	def := config.Default()

	configPtr := flag.String("config", "", "YAML-файл настроек (флаги имеют приоритет)")
	inputPtr := flag.String("input", def.InputPath, "Папка со скриншотами, отдельный скриншот или PDF")
	layoutPtr := flag.String("layout", def.LayoutPath, "Разметка областей (points.json или YAML)")
	outputPtr := flag.String("output", def.OutputCSV, "CSV с результатами матчей")
	missingPtr := flag.String("missing", "", "CSV со списком матчей без результата (необязательно)")
	resultsPtr := flag.String("results", "", "Полный результат по раундам: .json или .yaml (необязательно)")
	widthPtr := flag.Int("width", def.Width, "Ширина канонического разрешения (0 - как у источника)")
	heightPtr := flag.Int("height", def.Height, "Высота канонического разрешения (0 - как у источника)")
	resamplerPtr := flag.String("resampler", def.Resampler, "Масштабирование: nearest, bilinear, catmullrom")
	dpiPtr := flag.Int("dpi", def.DPI, "DPI для страниц PDF")
	tolerancePtr := flag.Int("tolerance", def.Tolerance, "Допуск по каждому каналу цвета")
	strictPtr := flag.Bool("strict-games", def.StrictGames, "Ошибка при повторе игры в одном раунде вместо перезаписи")
	workersPtr := flag.Int("workers", def.Workers, "Потоки")
	debugDirPtr := flag.String("debug-dir", "", "Папка для PNG-вырезок всех областей (отладка)")
	playerPtr := flag.String("player", "", "Оставить в таблице только матчи игрока (нечеткий поиск)")
	verbosePtr := flag.Bool("verbose", false, "Подробный вывод по каждому матчу")
	statsPtr := flag.Bool("stats", false, "Отчет о производительности и запись в benchmark.log")

	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		if err := cfg.LoadFile(*configPtr); err != nil {
			log.Fatalf("[-] Ошибка чтения настроек: %v", err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.Fatalf("[-] Ошибка в переменных окружения: %v", err)
	}

	// Явно заданные флаги перекрывают файл и окружение
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputPath = *inputPtr
		case "layout":
			cfg.LayoutPath = *layoutPtr
		case "output":
			cfg.OutputCSV = *outputPtr
		case "missing":
			cfg.MissingCSV = *missingPtr
		case "results":
			cfg.ResultsPath = *resultsPtr
		case "width":
			cfg.Width = *widthPtr
		case "height":
			cfg.Height = *heightPtr
		case "resampler":
			cfg.Resampler = *resamplerPtr
		case "dpi":
			cfg.DPI = *dpiPtr
		case "tolerance":
			cfg.Tolerance = *tolerancePtr
		case "strict-games":
			cfg.StrictGames = *strictPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "debug-dir":
			cfg.DebugDir = *debugDirPtr
		case "player":
			cfg.PlayerFilter = *playerPtr
		case "verbose":
			cfg.Verbose = *verbosePtr
		case "stats":
			cfg.ShowStats = *statsPtr
		}
	})
	cfg.BuildVersion = version

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Некорректные настройки: %v", err)
	}

	specs, err := layout.Load(cfg.LayoutPath)
	if err != nil {
		log.Fatalf("[-] Ошибка загрузки разметки %s: %v", cfg.LayoutPath, err)
	}
	if cfg.Width > 0 {
		if err := analyzer.CheckBounds(specs, image.Rect(0, 0, cfg.Width, cfg.Height)); err != nil {
			log.Fatalf("[-] Разметка не помещается в %dx%d: %v", cfg.Width, cfg.Height, err)
		}
	}

	src, err := source.New(cfg.InputPath)
	if err != nil {
		log.Fatalf("[-] Ошибка инициализации источника: %v", err)
	}
	defer src.Close()

	pageCount := src.PageCount()
	srcW, srcH, err := src.GetPageDimensions(0)
	if err != nil {
		log.Printf("[!] Не удалось определить размер первого кадра: %v", err)
	}

	fmt.Println("--- [BRACKET SCAN] ---")
	fmt.Printf("[*] Источник: %s | Кадров: %d | Областей: %d\n", cfg.InputPath, pageCount, len(specs))
	if cfg.Width > 0 && (int(srcW) != cfg.Width || int(srcH) != cfg.Height) {
		fmt.Printf("[*] Кадры %.0fx%.0f будут приведены к %dx%d (%s)\n", srcW, srcH, cfg.Width, cfg.Height, cfg.Resampler)
	} else {
		fmt.Printf("[*] Разрешение: %.0fx%.0f | Допуск: %d | Потоков: %d\n", srcW, srcH, cfg.Tolerance, cfg.Workers)
	}
	fmt.Println("----------------------")

	project, err := engine.NewProject(cfg, src, specs)
	if err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}
	if cfg.DebugDir != "" {
		dumper, err := inspect.NewPNGDumper(cfg.DebugDir)
		if err != nil {
			log.Fatalf("[-] Не удалось создать папку отладки: %v", err)
		}
		project.Inspect = dumper.Inspect
		fmt.Printf("[*] Вырезки областей сохраняются в %s\n", cfg.DebugDir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startTime := time.Now()
	tournament, err := project.Run(ctx)
	if err != nil {
		if engine.IsConfigError(err) {
			log.Fatalf("[-] Ошибка конфигурации (проверьте разметку и разрешение): %v", err)
		}
		log.Fatalf("[-] Ошибка обработки: %v", err)
	}
	analysisTime := time.Since(startTime)

	exportStart := time.Now()
	rows, missing := export.Rows(tournament)
	summary := export.Summarize(tournament, rows, missing)

	if cfg.PlayerFilter != "" {
		filtered, name := export.FilterPlayer(rows, cfg.PlayerFilter)
		if name == "" {
			log.Fatalf("[-] Игрок %q не найден в результатах", cfg.PlayerFilter)
		}
		fmt.Printf("[*] Фильтр по игроку: %s (%d из %d матчей)\n", name, len(filtered), len(rows))
		rows = filtered
	}

	if err := export.SaveCSV(cfg.OutputCSV, rows); err != nil {
		log.Fatalf("[-] Ошибка записи %s: %v", cfg.OutputCSV, err)
	}
	if cfg.MissingCSV != "" {
		if err := export.SaveMissingCSV(cfg.MissingCSV, missing); err != nil {
			log.Fatalf("[-] Ошибка записи %s: %v", cfg.MissingCSV, err)
		}
	}
	if cfg.ResultsPath != "" {
		if err := export.WriteResults(cfg.ResultsPath, tournament); err != nil {
			log.Fatalf("[-] Ошибка записи %s: %v", cfg.ResultsPath, err)
		}
		fmt.Printf("[*] Результаты по раундам: %s\n", cfg.ResultsPath)
	}
	exportTime := time.Since(exportStart)

	fmt.Printf("[+++] Сохранено раундов: %d, матчей: %d -> %s\n", summary.Rounds, len(rows), cfg.OutputCSV)
	if summary.Missing > 0 {
		fmt.Printf("[!] Нет результата у %d матчей:\n", summary.Missing)
		for _, m := range missing {
			fmt.Printf("    раунд %d: %s\n", m.Round, m.Game)
		}
	}

	if cfg.ShowStats {
		report := system.Report{
			Build:    cfg.BuildVersion,
			Input:    cfg.InputPath,
			Images:   pageCount,
			Workers:  cfg.Workers,
			Total:    time.Since(startTime),
			Analysis: analysisTime,
			Export:   exportTime,
			Usage:    system.Snapshot(),
		}
		fmt.Print(report)
		if err := system.AppendBenchmark("benchmark.log", report); err != nil {
			fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
		}
	}
}
