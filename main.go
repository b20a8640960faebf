package main

import "expensetracker/cmd"

// @title 个人记账 API
// @version 1.0
// @description 消费记录、类别管理与月度汇总接口
// @BasePath /

func main() {
	cmd.Execute()
}
