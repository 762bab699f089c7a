// api-test 对运行中的 todo-server 做一次冒烟测试
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"todo-board/config"
	"todo-board/model"
	"todo-board/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ 加载配置失败: %v\n", err)
		os.Exit(1)
	}
	baseURL := strings.TrimRight(cfg.Client.Endpoint, "/")

	var token string
	var opts []store.ClientOption
	if cfg.Client.AuthSecret != "" {
		token, err = cfg.Client.Token(10 * time.Minute)
		if err != nil {
			fmt.Printf("❌ 签发令牌失败: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, store.WithToken(token))
	}

	client, err := store.NewClient(baseURL, opts...)
	if err != nil {
		fmt.Printf("❌ 创建客户端失败: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("=== Todo Board API 测试 ===")

	fmt.Println("\n1. 测试健康检查端点 /health")
	testEndpoint(baseURL, "/health", "")

	fmt.Println("\n2. 测试获取待办事项列表")
	todos, err := client.FetchAll(ctx)
	check(err, "获取列表")
	fmt.Printf("✅ 当前共 %d 条待办事项\n", len(todos))

	fmt.Println("\n3. 测试创建新的待办事项")
	id, err := client.Create(ctx, model.NewDraft("学习Go语言", "完成第一个Go项目"))
	check(err, "创建")
	fmt.Printf("✅ 创建成功, id=%s\n", id)

	fmt.Println("\n4. 测试更新待办事项")
	err = client.Update(ctx, id, model.Fields{
		IsCompleted:     model.Ptr(true),
		Priority:        model.Ptr(model.PriorityImportant),
		Category:        model.Ptr(model.CategoryStudy),
		BackgroundColor: model.Ptr(model.MemoColors[2].Value),
	})
	check(err, "更新")
	fmt.Println("✅ 更新成功")

	fmt.Println("\n5. 测试统计端点")
	testEndpoint(baseURL, "/api/v1/todos/stats", token)

	fmt.Println("\n6. 测试删除待办事项")
	check(client.Delete(ctx, id), "删除")
	fmt.Println("✅ 删除成功")

	fmt.Println("\n=== 测试完成 ===")
}

func check(err error, op string) {
	if err != nil {
		fmt.Printf("❌ %s失败: %v\n", op, err)
		os.Exit(1)
	}
}

func testEndpoint(baseURL, endpoint, token string) {
	req, err := http.NewRequest(http.MethodGet, baseURL+endpoint, nil)
	if err != nil {
		fmt.Printf("❌ 创建请求失败: %v\n", err)
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("❌ 请求失败: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	fmt.Printf("✅ GET %s - Status: %d\n", endpoint, resp.StatusCode)
	fmt.Printf("Response: %s\n", string(body))
}
