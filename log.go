package longhair

import logging "github.com/dep2p/log"

var logger = logging.Logger("longhair")

// init 初始化全局日志实例
// 该函数在包初始化时自动执行,用于设置默认的日志配置
func init() {
	// 设置默认的日志配置
	// 使用JSON格式输出,输出到标准错误,日志级别为INFO
	logging.SetupLogging(logging.Config{
		Format: logging.JSONOutput, // 设置输出格式为JSON
		Stderr: true,               // 输出到标准错误
		Level:  logging.LevelInfo,  // 设置日志级别为INFO
	})
}

// SetLog 设置日志配置
// 该方法允许自定义日志输出的文件路径和是否输出到标准错误
// 参数:
// - filename: 日志文件路径,指定日志输出的目标文件
// - stderr: 可选参数,是否同时输出到标准错误,默认为false
func SetLog(filename string, stderr ...bool) {
	useStderr := false
	if len(stderr) > 0 {
		useStderr = stderr[0]
	}

	logging.SetupLogging(logging.Config{
		Format: logging.JSONOutput,
		Stderr: useStderr,
		File:   filename,
		Level:  logging.LevelInfo,
	})
}
