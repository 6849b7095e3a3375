package utils

import (
	"bufio"
	"fmt"
	"os"
)

// Prompter 操作员暂停点。业务逻辑只依赖接口，测试注入已决断的实现。
type Prompter interface {
	// Pause 输出提示并阻塞，直到操作员确认继续
	Pause(message string)
}

// ConsolePrompter 基于控制台的暂停实现（按回车继续）
type ConsolePrompter struct {
	reader *bufio.Reader
}

func NewConsolePrompter() *ConsolePrompter {
	return &ConsolePrompter{reader: bufio.NewReader(os.Stdin)}
}

func (p *ConsolePrompter) Pause(message string) {
	fmt.Println(message)
	fmt.Print("按回车继续...")
	p.reader.ReadString('\n')
}
