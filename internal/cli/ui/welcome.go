package ui

import (
	"fmt"
	"io"
)

// PrintWelcome выводит приветствие
func PrintWelcome(w io.Writer, baseURL string) {
	fmt.Fprintln(w, ColorBold+IconSearch+" pageObject probe console"+ColorReset)
	fmt.Fprintln(w, ColorGray+"Проверка локаторов и таблиц на живой странице"+ColorReset)
	if baseURL != "" {
		fmt.Fprintln(w, ColorGray+"Приложение: "+baseURL+ColorReset)
	}
	fmt.Fprintln(w)
	PrintHelp(w)
	fmt.Fprintln(w, ColorCyan+IconBulb+" Совет:"+ColorReset+" аргументы с пробелами берите в кавычки: "+ColorYellow+`text "text=Sign in"`+ColorReset)
	fmt.Fprintln(w)
	fmt.Fprintln(w, ColorGray+"⬆️ ⬇️"+ColorReset+" Используйте стрелки для навигации по истории команд")
	fmt.Fprintln(w)
}

var help = []struct{ cmd, desc string }{
	{"open <url|путь>", "Открыть страницу (путь относительно WEBAPP_URL)"},
	{"title", "Заголовок страницы"},
	{"present <локатор>", "Есть ли элемент"},
	{"count <локатор>", "Количество совпадений"},
	{"text <локатор>", "Видимый текст"},
	{"value <локатор>", "Значение поля"},
	{"attr <локатор> <имя>", "Значение атрибута"},
	{"click <локатор>", "Клик"},
	{"scroll <локатор>", "Прокрутить к элементу"},
	{"type <локатор> <текст>", "Ввод текста"},
	{"select <локатор> <опция>", "Выбор опции (value=, label=, index=)"},
	{"wait <локатор> [мс]", "Дождаться элемента"},
	{"wait-load [мс]", "Дождаться загрузки страницы"},
	{"until <js> [мс]", "Дождаться true от скрипта"},
	{"table <xpath>", "Выбрать таблицу"},
	{"columns", "Заголовки таблицы"},
	{"column <заголовок>", "Номер колонки"},
	{"find <ключ>...", "Найти строку по всем страницам"},
	{"row <n>", "Строка текущей страницы"},
	{"rows", "Все строки всех страниц"},
	{"next | prev | first | last", "Листать таблицу"},
	{"windows", "Список окон"},
	{"window <title=|name=>", "Переключиться на окно"},
	{"runs [n]", "Последние прогоны"},
	{"clear", "Очистить экран"},
	{"exit", "Выход"},
}

// PrintHelp выводит список доступных команд
func PrintHelp(w io.Writer) {
	fmt.Fprintln(w, ColorYellow+IconList+" Доступные команды:"+ColorReset)
	for _, h := range help {
		fmt.Fprintf(w, "  "+ColorGreen+"%-26s"+ColorReset+" - %s\n", h.cmd, h.desc)
	}
	fmt.Fprintln(w)
}
